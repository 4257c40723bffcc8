package httpapi

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/metrics"
	"github.com/riskibarqy/nfl-draft-league/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const internalJobTokenHeader = "X-Internal-Job-Token"

// untracedPaths are probe and scrape endpoints kept out of traces and
// request metrics.
var untracedPaths = map[string]struct{}{
	"/healthz": {},
	"/health":  {},
	"/livez":   {},
	"/readyz":  {},
	"/metrics": {},
}

// RequireInternalJobToken guards job routes. QStash forwards the token via
// Upstash-Forward-X-Internal-Job-Token.
func RequireInternalJobToken(token string, next http.Handler) http.Handler {
	expected := []byte(strings.TrimSpace(token))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(expected) == 0 {
			writeError(r.Context(), w, fmt.Errorf("%w: internal job token is not configured", usecase.ErrDependencyUnavailable))
			return
		}

		provided := []byte(strings.TrimSpace(r.Header.Get(internalJobTokenHeader)))
		if len(provided) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
			writeError(r.Context(), w, fmt.Errorf("%w: invalid internal job token", usecase.ErrUnauthorized))
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogging writes one log line per request and records request
// metrics keyed by the matched mux pattern. The pattern is only known once
// the mux has served the request, so the same *http.Request must reach it.
func RequestLogging(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(started)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		if shouldTraceRequest(r.URL.Path) {
			metrics.ObserveHTTPRequest(route, rec.status, elapsed)
		}

		logger.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"status", rec.status,
			"client_ip", clientIP(r),
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "nfl-draft-league-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	_, skip := untracedPaths[strings.ToLower(strings.TrimSpace(path))]
	return !skip
}

func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		switch origin = strings.TrimSpace(origin); origin {
		case "":
		case "*":
			allowAll = true
		default:
			allowed[origin] = struct{}{}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin != "" {
			_, ok := allowed[origin]
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case ok:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			if allowAll || ok {
				// The API is read-only apart from the token-guarded job routes.
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Accept,"+internalJobTokenHeader)
				w.Header().Set("Access-Control-Max-Age", "600")
			}
		}

		if origin != "" && r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
