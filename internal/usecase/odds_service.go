package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/odds"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/season"
	"github.com/sourcegraph/conc/pool"
)

type WeekInfo struct {
	Week     int
	Weeks    int
	TimeZone string
}

type WeeklyOdds struct {
	Week  int
	Lines []odds.GameLine
}

type WeeklyExpectedWins struct {
	Week  int
	Users []odds.UserExpectedWins
}

type OddsService struct {
	oddsRepo      odds.Repository
	ownershipRepo odds.OwnershipRepository
	calendar      *season.Calendar
	now           func() time.Time
}

func NewOddsService(oddsRepo odds.Repository, ownershipRepo odds.OwnershipRepository, calendar *season.Calendar) *OddsService {
	return &OddsService{
		oddsRepo:      oddsRepo,
		ownershipRepo: ownershipRepo,
		calendar:      calendar,
		now:           time.Now,
	}
}

func (s *OddsService) CurrentWeek(_ context.Context) WeekInfo {
	return WeekInfo{
		Week:     s.calendar.CurrentWeek(s.now()),
		Weeks:    s.calendar.Weeks(),
		TimeZone: s.calendar.Location().String(),
	}
}

// Location is the league time zone used for display dates.
func (s *OddsService) Location() *time.Location {
	return s.calendar.Location()
}

// ResolveWeek returns week when set, otherwise the current calendar week.
func (s *OddsService) ResolveWeek(week *int) (int, error) {
	if week == nil {
		return s.calendar.CurrentWeek(s.now()), nil
	}
	if !s.calendar.ValidWeek(*week) {
		return 0, fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, s.calendar.Weeks())
	}
	return *week, nil
}

func (s *OddsService) ListOdds(ctx context.Context, week *int) (WeeklyOdds, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.ListOdds")
	defer span.End()

	resolved, err := s.ResolveWeek(week)
	if err != nil {
		return WeeklyOdds{}, err
	}

	lines, err := s.oddsRepo.ListByWeek(ctx, resolved)
	if err != nil {
		return WeeklyOdds{}, fmt.Errorf("list game lines week=%d: %w", resolved, err)
	}

	return WeeklyOdds{Week: resolved, Lines: lines}, nil
}

func (s *OddsService) ExpectedWins(ctx context.Context, week *int) (WeeklyExpectedWins, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.ExpectedWins")
	defer span.End()

	resolved, err := s.ResolveWeek(week)
	if err != nil {
		return WeeklyExpectedWins{}, err
	}

	var (
		ownerships []odds.Ownership
		lines      []odds.GameLine
	)
	loaders := pool.New().WithContext(ctx).WithCancelOnError()
	loaders.Go(func(ctx context.Context) error {
		items, err := s.ownershipRepo.ListOwnerships(ctx)
		if err != nil {
			return fmt.Errorf("list ownerships: %w", err)
		}
		ownerships = items
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		items, err := s.oddsRepo.ListByWeek(ctx, resolved)
		if err != nil {
			return fmt.Errorf("list game lines week=%d: %w", resolved, err)
		}
		lines = items
		return nil
	})
	if err := loaders.Wait(); err != nil {
		return WeeklyExpectedWins{}, err
	}

	return WeeklyExpectedWins{
		Week:  resolved,
		Users: odds.ExpectedWins(ownerships, lines),
	}, nil
}
