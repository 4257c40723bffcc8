package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/team"
)

type TeamService struct {
	teamRepo team.Repository
}

func NewTeamService(teamRepo team.Repository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}

// ListStats returns season totals joined with team identity, ordered by team name.
func (s *TeamService) ListStats(ctx context.Context) ([]team.StatsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListStats")
	defer span.End()

	items, err := s.teamRepo.ListStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team stats: %w", err)
	}

	return items, nil
}
