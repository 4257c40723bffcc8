package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/standing"
)

type StandingRepository struct {
	data *Dataset
}

func NewStandingRepository(data *Dataset) *StandingRepository {
	return &StandingRepository{data: data}
}

func (r *StandingRepository) List(_ context.Context) ([]standing.Standing, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	out := make([]standing.Standing, 0, len(r.data.standings))
	for _, item := range r.data.standings {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].OverallRank, out[j].OverallRank
		switch {
		case a != nil && b != nil && *a != *b:
			return *a < *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return out[i].TeamID < out[j].TeamID
	})

	return out, nil
}

func (r *StandingRepository) ListOwnedRecords(_ context.Context) ([]standing.OwnedRecord, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	out := make([]standing.OwnedRecord, 0, len(r.data.userTeams))
	for _, owned := range r.data.userTeams {
		user, ok := r.data.users[owned.UserID]
		if !ok {
			continue
		}
		rec := standing.OwnedRecord{
			UserID:   user.ID,
			UserName: user.UserName,
			TeamID:   owned.TeamID,
		}
		if s, ok := r.data.standings[owned.TeamID]; ok {
			rec.Wins = s.Wins
			rec.Losses = s.Losses
			rec.Ties = s.Ties
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].TeamID < out[j].TeamID
	})

	return out, nil
}

func (r *StandingRepository) Upsert(_ context.Context, items []standing.Standing) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	for _, item := range items {
		if item.TeamID <= 0 {
			continue
		}
		r.data.standings[item.TeamID] = item
	}

	return nil
}
