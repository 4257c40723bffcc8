package httpapi

import (
	"net/http"

	"github.com/riskibarqy/nfl-draft-league/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled, metricsEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
	if metricsEnabled {
		mux.Handle("GET /metrics", metrics.Handler())
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/draft-picks", handler.ListDraftPicks)
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/team-stats", handler.ListTeamStats)
	mux.HandleFunc("GET /v1/theoretical-wins", handler.GetTheoreticalWins)
	mux.HandleFunc("GET /v1/theoretical-wins/totals", handler.GetTheoreticalWinTotals)
	mux.HandleFunc("GET /v1/user-win-totals", handler.ListUserWinTotals)
	mux.HandleFunc("GET /v1/odds", handler.ListWeeklyOdds)
	mux.HandleFunc("GET /v1/expected-wins", handler.GetWeeklyExpectedWins)
	mux.HandleFunc("GET /v1/weeks/current", handler.GetCurrentWeek)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("GET /v1/internal/jobs/dispatches", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ListJobDispatches)))
	mux.Handle("POST /v1/internal/jobs/{job}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunJob)))
}
