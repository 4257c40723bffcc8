package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/odds"
)

type OddsRepository struct {
	data *Dataset
}

func NewOddsRepository(data *Dataset) *OddsRepository {
	return &OddsRepository{data: data}
}

func (r *OddsRepository) ListByWeek(_ context.Context, week int) ([]odds.GameLine, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	out := make([]odds.GameLine, 0)
	for _, line := range r.data.gameLines {
		if line.Week != week {
			continue
		}
		if away, ok := r.data.teamByAbbreviation(line.AwayTeamAbbreviation); ok {
			line.AwayTeamName = away.Name
		}
		if home, ok := r.data.teamByAbbreviation(line.HomeTeamAbbreviation); ok {
			line.HomeTeamName = home.Name
		}
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		return out[i].SourceName < out[j].SourceName
	})

	return out, nil
}

func (r *OddsRepository) UpsertLines(_ context.Context, lines []odds.GameLine) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	for _, line := range lines {
		key := gameLineKey{gameID: line.GameID, sourceName: line.SourceName}
		if existing, ok := r.data.gameLines[key]; ok {
			line.ID = existing.ID
		} else {
			r.data.nextLineID++
			line.ID = r.data.nextLineID
		}
		line.AwayTeamName = ""
		line.HomeTeamName = ""
		r.data.gameLines[key] = line
	}

	return nil
}

func (r *OddsRepository) ListOwnerships(_ context.Context) ([]odds.Ownership, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	out := make([]odds.Ownership, 0, len(r.data.userTeams))
	for _, owned := range r.data.userTeams {
		user, ok := r.data.users[owned.UserID]
		if !ok {
			continue
		}
		t, ok := r.data.teams[owned.TeamID]
		if !ok {
			continue
		}
		out = append(out, odds.Ownership{
			UserID:           user.ID,
			UserName:         user.UserName,
			TeamID:           t.ID,
			TeamAbbreviation: t.Abbreviation,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].TeamID < out[j].TeamID
	})

	return out, nil
}
