package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/draft"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/game"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/odds"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/standing"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/team"
)

type gameLineKey struct {
	gameID     int64
	sourceName string
}

// Dataset holds every table of the in-process store. Repositories share one
// Dataset so joins see each other's writes.
type Dataset struct {
	mu sync.RWMutex

	users      map[int64]User
	teams      map[int64]team.Team
	teamStats  map[int64]team.Stats
	standings  map[int64]standing.Standing
	games      map[int64]game.Game
	gameLines  map[gameLineKey]odds.GameLine
	nextLineID int64
	picks      []draft.DraftPick
	userTeams  []UserTeam
	dispatches map[string]jobscheduler.DispatchEvent
}

func NewDataset(users []User, teams []team.Team, picks []draft.DraftPick, userTeams []UserTeam, standings []standing.Standing) *Dataset {
	ds := &Dataset{
		users:      make(map[int64]User, len(users)),
		teams:      make(map[int64]team.Team, len(teams)),
		teamStats:  make(map[int64]team.Stats),
		standings:  make(map[int64]standing.Standing, len(standings)),
		games:      make(map[int64]game.Game),
		gameLines:  make(map[gameLineKey]odds.GameLine),
		picks:      append([]draft.DraftPick(nil), picks...),
		userTeams:  append([]UserTeam(nil), userTeams...),
		dispatches: make(map[string]jobscheduler.DispatchEvent),
	}
	for _, u := range users {
		ds.users[u.ID] = u
	}
	for _, t := range teams {
		ds.teams[t.ID] = t
	}
	for _, s := range standings {
		ds.standings[s.TeamID] = s
	}
	return ds
}

// NewSeededDataset returns a Dataset filled with the development seed.
func NewSeededDataset() *Dataset {
	return NewDataset(SeedUsers(), SeedTeams(), SeedDraftPicks(), SeedUserTeams(), SeedStandings())
}

func (d *Dataset) teamByAbbreviation(abbreviation string) (team.Team, bool) {
	for _, t := range d.teams {
		if t.Abbreviation == abbreviation {
			return t, true
		}
	}
	return team.Team{}, false
}

// Ping always succeeds for the in-process store.
func (d *Dataset) Ping(context.Context) error {
	return nil
}
