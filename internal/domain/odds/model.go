package odds

import "time"

// GameLine is one sportsbook line for a game in a given week. Moneylines and
// spreads are nil when the book has not published that side.
type GameLine struct {
	ID                   int64
	GameID               int64
	Week                 int
	StartTime            time.Time
	AwayTeamAbbreviation string
	AwayTeamName         string
	HomeTeamAbbreviation string
	HomeTeamName         string
	SourceName           string
	MoneyLineAway        *int
	MoneyLineHome        *int
	PointSpreadAway      *float64
	PointSpreadHome      *float64
	OverUnder            *float64
	DateFetched          time.Time
}

// Ownership ties a user to a team they currently hold.
type Ownership struct {
	UserID           int64
	UserName         string
	TeamID           int64
	TeamAbbreviation string
}

type UserExpectedWins struct {
	UserID            int64
	UserName          string
	TotalExpectedWins float64
}
