package httpapi

import "net/http"

func (h *Handler) ListWeeklyOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeeklyOdds")
	defer span.End()

	week, err := h.weekFromQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.oddsService.ListOdds(ctx, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "list weekly odds failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeklyOddsToDTO(result, h.oddsService.Location()))
}

func (h *Handler) GetWeeklyExpectedWins(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklyExpectedWins")
	defer span.End()

	week, err := h.weekFromQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.oddsService.ExpectedWins(ctx, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "compute weekly expected wins failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeklyExpectedWinsToDTO(result))
}

func (h *Handler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentWeek")
	defer span.End()

	info := h.oddsService.CurrentWeek(ctx)
	writeSuccess(ctx, w, http.StatusOK, currentWeekDTO{
		Week:     info.Week,
		Weeks:    info.Weeks,
		TimeZone: info.TimeZone,
	})
}
