package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/team"
)

type TeamRepository struct {
	data *Dataset
}

func NewTeamRepository(data *Dataset) *TeamRepository {
	return &TeamRepository{data: data}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	out := make([]team.Team, 0, len(r.data.teams))
	for _, item := range r.data.teams {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *TeamRepository) ListStats(_ context.Context) ([]team.StatsView, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	out := make([]team.StatsView, 0, len(r.data.teamStats))
	for teamID, stats := range r.data.teamStats {
		item, ok := r.data.teams[teamID]
		if !ok {
			continue
		}
		out = append(out, team.StatsView{
			Stats:        stats,
			TeamName:     item.Name,
			Abbreviation: item.Abbreviation,
			City:         item.City,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamName != out[j].TeamName {
			return out[i].TeamName < out[j].TeamName
		}
		return out[i].TeamID < out[j].TeamID
	})

	return out, nil
}

func (r *TeamRepository) Upsert(_ context.Context, items []team.Team) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	for _, item := range items {
		if item.ID <= 0 {
			continue
		}
		r.data.teams[item.ID] = item
	}

	return nil
}

func (r *TeamRepository) UpsertStats(_ context.Context, items []team.Stats) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	for _, item := range items {
		if item.TeamID <= 0 {
			continue
		}
		r.data.teamStats[item.TeamID] = item
	}

	return nil
}
