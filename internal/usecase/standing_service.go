package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/standing"
)

type StandingService struct {
	standingRepo standing.Repository
}

func NewStandingService(standingRepo standing.Repository) *StandingService {
	return &StandingService{standingRepo: standingRepo}
}

func (s *StandingService) List(ctx context.Context) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.List")
	defer span.End()

	items, err := s.standingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	return items, nil
}

func (s *StandingService) UserWinTotals(ctx context.Context) ([]standing.UserRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.UserWinTotals")
	defer span.End()

	records, err := s.standingRepo.ListOwnedRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list owned team records: %w", err)
	}

	return standing.UserTotals(records), nil
}
