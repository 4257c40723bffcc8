package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
	"github.com/riskibarqy/nfl-draft-league/internal/usecase"
)

type Handler struct {
	draftService    *usecase.DraftService
	standingService *usecase.StandingService
	teamService     *usecase.TeamService
	oddsService     *usecase.OddsService
	jobService      *usecase.JobService
	readiness       usecase.Pinger
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	draftService *usecase.DraftService,
	standingService *usecase.StandingService,
	teamService *usecase.TeamService,
	oddsService *usecase.OddsService,
	jobService *usecase.JobService,
	readiness usecase.Pinger,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		draftService:    draftService,
		standingService: standingService,
		teamService:     teamService,
		oddsService:     oddsService,
		jobService:      jobService,
		readiness:       readiness,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	if h.readiness != nil {
		if err := h.readiness.Ping(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: database ping failed: %w", usecase.ErrDependencyUnavailable, err))
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type weekQuery struct {
	Week *int `validate:"omitempty,min=1,max=18"`
}

// weekFromQuery reads the optional week query parameter. A missing or blank
// value yields nil so the caller falls back to the current week.
func (h *Handler) weekFromQuery(ctx context.Context, r *http.Request) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("week"))
	if raw == "" {
		return nil, nil
	}

	week, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: week must be an integer", usecase.ErrInvalidInput)
	}
	if err := h.validateRequest(ctx, weekQuery{Week: &week}); err != nil {
		return nil, err
	}

	return &week, nil
}
