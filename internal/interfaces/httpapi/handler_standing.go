package httpapi

import "net/http"

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	standings, err := h.standingService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		items = append(items, standingToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListUserWinTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUserWinTotals")
	defer span.End()

	records, err := h.standingService.UserWinTotals(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list user win totals failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]userRecordDTO, 0, len(records))
	for _, record := range records {
		items = append(items, userRecordToDTO(record))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamStats")
	defer span.End()

	stats, err := h.teamService.ListStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list team stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamStatsDTO, 0, len(stats))
	for _, s := range stats {
		items = append(items, teamStatsToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
