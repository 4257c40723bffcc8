package postgres

import "database/sql"

type teamTableModel struct {
	ID            int64         `db:"id"`
	City          string        `db:"city"`
	Name          string        `db:"name"`
	Abbreviation  string        `db:"abbreviation"`
	HomeVenueID   sql.NullInt64 `db:"home_venue_id"`
	TeamColorsHex string        `db:"team_colors_hex"`
	SocialMedia   string        `db:"social_media"`
	LogoURL       string        `db:"logo_url"`
}

type teamUpsertModel struct {
	ID            int64  `db:"id"`
	City          string `db:"city"`
	Name          string `db:"name"`
	Abbreviation  string `db:"abbreviation"`
	HomeVenueID   *int64 `db:"home_venue_id"`
	TeamColorsHex string `db:"team_colors_hex"`
	SocialMedia   string `db:"social_media"`
	LogoURL       string `db:"logo_url"`
}

type teamStatsModel struct {
	TeamID                 int64   `db:"team_id"`
	GamesPlayed            int     `db:"games_played"`
	Wins                   int     `db:"wins"`
	Losses                 int     `db:"losses"`
	PointsFor              int     `db:"points_for"`
	PointsAgainst          int     `db:"points_against"`
	PassingAttempts        int     `db:"passing_attempts"`
	PassingCompletions     int     `db:"passing_completions"`
	PassingYards           int     `db:"passing_yards"`
	RushingAttempts        int     `db:"rushing_attempts"`
	RushingYards           int     `db:"rushing_yards"`
	ReceivingYards         int     `db:"receiving_yards"`
	Tackles                int     `db:"tackles"`
	Interceptions          int     `db:"interceptions"`
	Fumbles                int     `db:"fumbles"`
	KickoffReturns         int     `db:"kickoff_returns"`
	PuntReturns            int     `db:"punt_returns"`
	FieldGoalsMade         int     `db:"field_goals_made"`
	FieldGoalsAttempted    int     `db:"field_goals_attempted"`
	ExtraPointsMade        int     `db:"extra_points_made"`
	ExtraPointsAttempted   int     `db:"extra_points_attempted"`
	OffensePlays           int     `db:"offense_plays"`
	OffenseYards           int     `db:"offense_yards"`
	OffenseAvgYardsPerPlay float64 `db:"offense_avg_yards_per_play"`
	TotalTD                int     `db:"total_td"`
}

type teamStatsViewRow struct {
	teamStatsModel
	TeamName     string `db:"team_name"`
	Abbreviation string `db:"abbreviation"`
	City         string `db:"city"`
}
