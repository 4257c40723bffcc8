package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/game"
)

type GameRepository struct {
	data *Dataset
}

func NewGameRepository(data *Dataset) *GameRepository {
	return &GameRepository{data: data}
}

func (r *GameRepository) ListByWeek(_ context.Context, week int) ([]game.Game, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, item := range r.data.games {
		if item.Week == week {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *GameRepository) Upsert(_ context.Context, items []game.Game) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	for _, item := range items {
		r.data.games[item.ID] = item
	}

	return nil
}
