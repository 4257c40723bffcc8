package memory

import (
	"github.com/riskibarqy/nfl-draft-league/internal/domain/draft"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/standing"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/team"
)

// User is a league member who drafts teams.
type User struct {
	ID       int64
	UserName string
}

// UserTeam records that a user currently holds a team.
type UserTeam struct {
	UserID int64
	TeamID int64
}

func SeedUsers() []User {
	return []User{
		{ID: 1, UserName: "alex"},
		{ID: 2, UserName: "brooke"},
		{ID: 3, UserName: "casey"},
		{ID: 4, UserName: "devon"},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 48, City: "Buffalo", Name: "Bills", Abbreviation: "BUF"},
		{ID: 50, City: "Baltimore", Name: "Ravens", Abbreviation: "BAL"},
		{ID: 51, City: "Philadelphia", Name: "Eagles", Abbreviation: "PHI"},
		{ID: 55, City: "Detroit", Name: "Lions", Abbreviation: "DET"},
		{ID: 62, City: "Kansas City", Name: "Chiefs", Abbreviation: "KC"},
		{ID: 66, City: "Houston", Name: "Texans", Abbreviation: "HOU"},
		{ID: 69, City: "Green Bay", Name: "Packers", Abbreviation: "GB"},
		{ID: 71, City: "San Francisco", Name: "49ers", Abbreviation: "SF"},
	}
}

// SeedDraftPicks is a two round draft where pick position equals the overall
// pick number.
func SeedDraftPicks() []draft.DraftPick {
	order := []struct {
		userID int64
		teamID int64
	}{
		{1, 62}, {2, 71}, {3, 50}, {4, 55},
		{4, 48}, {3, 51}, {2, 66}, {1, 69},
	}

	out := make([]draft.DraftPick, 0, len(order))
	for i, item := range order {
		out = append(out, draft.DraftPick{
			ID:           int64(i + 1),
			UserID:       item.userID,
			TeamID:       item.teamID,
			PickNumber:   i + 1,
			PickPosition: i + 1,
		})
	}
	return out
}

// SeedUserTeams mirrors the seeded draft.
func SeedUserTeams() []UserTeam {
	picks := SeedDraftPicks()
	out := make([]UserTeam, 0, len(picks))
	for _, pick := range picks {
		out = append(out, UserTeam{UserID: pick.UserID, TeamID: pick.TeamID})
	}
	return out
}

func SeedStandings() []standing.Standing {
	rank := func(v int) *int { return &v }
	return []standing.Standing{
		{TeamID: 62, Abbreviation: "KC", Wins: 2, OverallRank: rank(1), Conference: "American Football Conference", Division: "AFC West"},
		{TeamID: 48, Abbreviation: "BUF", Wins: 2, OverallRank: rank(2), Conference: "American Football Conference", Division: "AFC East"},
		{TeamID: 66, Abbreviation: "HOU", Wins: 2, OverallRank: rank(3), Conference: "American Football Conference", Division: "AFC South"},
		{TeamID: 51, Abbreviation: "PHI", Wins: 1, Losses: 1, OverallRank: rank(4), Conference: "National Football Conference", Division: "NFC East"},
		{TeamID: 55, Abbreviation: "DET", Wins: 1, Losses: 1, OverallRank: rank(5), Conference: "National Football Conference", Division: "NFC North"},
		{TeamID: 71, Abbreviation: "SF", Wins: 1, Losses: 1, OverallRank: rank(6), Conference: "National Football Conference", Division: "NFC West"},
		{TeamID: 69, Abbreviation: "GB", Wins: 1, Losses: 1, OverallRank: rank(7), Conference: "National Football Conference", Division: "NFC North"},
		{TeamID: 50, Abbreviation: "BAL", Losses: 2, OverallRank: rank(8), Conference: "American Football Conference", Division: "AFC North"},
	}
}
