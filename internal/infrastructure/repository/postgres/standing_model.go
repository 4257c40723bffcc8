package postgres

import "database/sql"

type standingModel struct {
	TeamID            int64         `db:"team_id"`
	Abbreviation      string        `db:"abbreviation"`
	Wins              int           `db:"wins"`
	Losses            int           `db:"losses"`
	Ties              int           `db:"ties"`
	OTWins            int           `db:"ot_wins"`
	OTLosses          int           `db:"ot_losses"`
	WinPct            float64       `db:"win_pct"`
	PointsFor         int           `db:"points_for"`
	PointsAgainst     int           `db:"points_against"`
	PointDifferential int           `db:"point_differential"`
	Conference        string        `db:"conference"`
	ConferenceRank    sql.NullInt64 `db:"conference_rank"`
	GamesBack         float64       `db:"games_back"`
	Division          string        `db:"division"`
	DivisionRank      sql.NullInt64 `db:"division_rank"`
	PlayoffRank       sql.NullInt64 `db:"playoff_rank"`
	OverallRank       sql.NullInt64 `db:"overall_rank"`
	HomeWins          int           `db:"home_wins"`
	AwayWins          int           `db:"away_wins"`
	Streak            string        `db:"streak"`
	OfficialLogoURL   string        `db:"official_logo_url"`
	SocialMedia       string        `db:"social_media"`
}

type ownedRecordRow struct {
	UserID   int64  `db:"user_id"`
	UserName string `db:"user_name"`
	TeamID   int64  `db:"team_id"`
	Wins     int    `db:"wins"`
	Losses   int    `db:"losses"`
	Ties     int    `db:"ties"`
}
