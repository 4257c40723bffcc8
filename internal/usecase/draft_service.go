package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/draft"
)

type DraftService struct {
	draftRepo draft.Repository
}

func NewDraftService(draftRepo draft.Repository) *DraftService {
	return &DraftService{draftRepo: draftRepo}
}

func (s *DraftService) ListPicks(ctx context.Context) ([]draft.DraftPick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.ListPicks")
	defer span.End()

	picks, err := s.draftRepo.ListPicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list draft picks: %w", err)
	}

	return picks, nil
}

// TheoreticalWins re-runs the draft against current standings so that every
// pick takes the best-ranked drafted team still on the board.
func (s *DraftService) TheoreticalWins(ctx context.Context) (map[int64]draft.UserDraftResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.TheoreticalWins")
	defer span.End()

	rows, err := s.draftRepo.ListStandingRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list draft standing rows: %w", err)
	}

	picks, teams := draft.SplitStandingRows(rows)
	return draft.AssignTeams(picks, teams), nil
}

func (s *DraftService) TheoreticalWinTotals(ctx context.Context) (map[int64]int, error) {
	results, err := s.TheoreticalWins(ctx)
	if err != nil {
		return nil, err
	}

	return draft.AggregateWins(results), nil
}
