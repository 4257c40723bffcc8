package httpapi

import (
	"net/http"
)

func (h *Handler) ListDraftPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDraftPicks")
	defer span.End()

	picks, err := h.draftService.ListPicks(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list draft picks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]draftPickDTO, 0, len(picks))
	for _, pick := range picks {
		items = append(items, draftPickToDTO(pick))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTheoreticalWins(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTheoreticalWins")
	defer span.End()

	results, err := h.draftService.TheoreticalWins(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "compute theoretical wins failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftResultsToDTO(results))
}

func (h *Handler) GetTheoreticalWinTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTheoreticalWinTotals")
	defer span.End()

	totals, err := h.draftService.TheoreticalWinTotals(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "compute theoretical win totals failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, winTotalsToDTO(totals))
}
