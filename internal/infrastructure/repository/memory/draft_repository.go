package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/draft"
)

// unrankedOverallRank places teams without a rank after every ranked team.
const unrankedOverallRank = 999

type DraftRepository struct {
	data *Dataset
}

func NewDraftRepository(data *Dataset) *DraftRepository {
	return &DraftRepository{data: data}
}

func (r *DraftRepository) ListPicks(_ context.Context) ([]draft.DraftPick, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	out := append([]draft.DraftPick(nil), r.data.picks...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PickNumber < out[j].PickNumber
	})

	return out, nil
}

func (r *DraftRepository) ListStandingRows(_ context.Context) ([]draft.StandingRow, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	picks := append([]draft.DraftPick(nil), r.data.picks...)
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].PickNumber < picks[j].PickNumber
	})

	out := make([]draft.StandingRow, 0, len(picks))
	for _, pick := range picks {
		user, ok := r.data.users[pick.UserID]
		if !ok {
			continue
		}
		s, ok := r.data.standings[pick.TeamID]
		if !ok {
			continue
		}
		t, ok := r.data.teams[pick.TeamID]
		if !ok {
			continue
		}
		rank := unrankedOverallRank
		if s.OverallRank != nil {
			rank = *s.OverallRank
		}
		out = append(out, draft.StandingRow{
			PickPosition: pick.PickPosition,
			UserID:       user.ID,
			UserName:     user.UserName,
			TeamID:       t.ID,
			TeamName:     t.Name,
			OverallRank:  rank,
			Wins:         s.Wins,
		})
	}

	return out, nil
}
