package team

import "fmt"

// Team is an NFL franchise as published by the stats provider.
type Team struct {
	ID            int64
	City          string
	Name          string
	Abbreviation  string
	HomeVenueID   *int64
	TeamColorsHex string
	SocialMedia   string
	LogoURL       string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Abbreviation == "" {
		return fmt.Errorf("team abbreviation is required")
	}

	return nil
}

// Stats are season-to-date totals for one team.
type Stats struct {
	TeamID                 int64
	GamesPlayed            int
	Wins                   int
	Losses                 int
	PointsFor              int
	PointsAgainst          int
	PassingAttempts        int
	PassingCompletions     int
	PassingYards           int
	RushingAttempts        int
	RushingYards           int
	ReceivingYards         int
	Tackles                int
	Interceptions          int
	Fumbles                int
	KickoffReturns         int
	PuntReturns            int
	FieldGoalsMade         int
	FieldGoalsAttempted    int
	ExtraPointsMade        int
	ExtraPointsAttempted   int
	OffensePlays           int
	OffenseYards           int
	OffenseAvgYardsPerPlay float64
	TotalTD                int
}

// StatsView is Stats joined with the owning team's identity.
type StatsView struct {
	Stats
	TeamName     string
	Abbreviation string
	City         string
}
