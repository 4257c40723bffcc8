package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/nfl-draft-league/internal/usecase"
)

const maxJobRequestBody = 64 << 10

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

type internalJobRequest struct {
	Week       *int   `json:"week" validate:"omitempty,min=1,max=18"`
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	DispatchID string `json:"dispatch_id" validate:"omitempty,max=200"`
}

type listDispatchesQuery struct {
	Limit int `validate:"min=0,max=200"`
}

// RunJob executes the job named in the path in-process. QStash deliveries and
// manual triggers share this route.
func (h *Handler) RunJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunJob")
	defer span.End()

	if h.jobService == nil {
		writeError(ctx, w, fmt.Errorf("%w: job service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	jobName := strings.TrimSpace(r.PathValue("job"))
	req, err := decodeInternalJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.JobInput{
		Week:       req.Week,
		DispatchID: strings.TrimSpace(req.DispatchID),
	}
	if req.Date != "" {
		date, err := time.ParseInLocation("2006-01-02", req.Date, h.oddsService.Location())
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: date must be YYYY-MM-DD", usecase.ErrInvalidInput))
			return
		}
		input.Date = &date
	}

	result, err := h.jobService.Run(ctx, jobName, input)
	if err != nil {
		h.logger.WarnContext(ctx, "run internal job failed", "job", jobName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListJobDispatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJobDispatches")
	defer span.End()

	if h.jobService == nil {
		writeError(ctx, w, fmt.Errorf("%w: job service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	query := listDispatchesQuery{}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		query.Limit = limit
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	events, err := h.jobService.ListDispatches(ctx, query.Limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list job dispatches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]jobDispatchDTO, 0, len(events))
	for _, event := range events {
		items = append(items, jobDispatchToDTO(event))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// decodeInternalJobRequest accepts an empty body as a request for the
// current week or date.
func decodeInternalJobRequest(r *http.Request) (internalJobRequest, error) {
	if r.Body == nil {
		return internalJobRequest{}, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxJobRequestBody))
	if err != nil {
		return internalJobRequest{}, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return internalJobRequest{}, nil
	}

	var req internalJobRequest
	if err := strictJSON.Unmarshal(raw, &req); err != nil {
		return internalJobRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
