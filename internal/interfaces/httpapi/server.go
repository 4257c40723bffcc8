package httpapi

import (
	"net/http"

	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	MetricsEnabled     bool
	CORSAllowedOrigins []string
	InternalJobToken   string
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled, cfg.MetricsEnabled)
	registerPublicDomainRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
