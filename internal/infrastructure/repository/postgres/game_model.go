package postgres

import (
	"database/sql"
	"time"
)

type gameModel struct {
	ID                       int64         `db:"id"`
	Week                     int           `db:"week"`
	StartTime                time.Time     `db:"start_time"`
	EndedTime                sql.NullTime  `db:"ended_time"`
	AwayTeamID               int64         `db:"away_team_id"`
	HomeTeamID               int64         `db:"home_team_id"`
	VenueID                  sql.NullInt64 `db:"venue_id"`
	VenueAllegiance          string        `db:"venue_allegiance"`
	ScheduleStatus           string        `db:"schedule_status"`
	OriginalStartTime        sql.NullTime  `db:"original_start_time"`
	DelayedOrPostponedReason string        `db:"delayed_or_postponed_reason"`
	PlayedStatus             string        `db:"played_status"`
	AwayScoreTotal           sql.NullInt64 `db:"away_score_total"`
	HomeScoreTotal           sql.NullInt64 `db:"home_score_total"`
}

type gameLineUpsertModel struct {
	GameID               int64     `db:"game_id"`
	Week                 int       `db:"week"`
	StartTime            time.Time `db:"start_time"`
	AwayTeamAbbreviation string    `db:"away_team_abbreviation"`
	HomeTeamAbbreviation string    `db:"home_team_abbreviation"`
	SourceName           string    `db:"source_name"`
	MoneyLineAway        *int      `db:"money_line_away"`
	MoneyLineHome        *int      `db:"money_line_home"`
	PointSpreadAway      *float64  `db:"point_spread_away"`
	PointSpreadHome      *float64  `db:"point_spread_home"`
	OverUnder            *float64  `db:"over_under"`
	DateFetched          time.Time `db:"date_fetched"`
}

type gameLineRow struct {
	ID                   int64           `db:"id"`
	GameID               int64           `db:"game_id"`
	Week                 int             `db:"week"`
	StartTime            time.Time       `db:"start_time"`
	AwayTeamAbbreviation string          `db:"away_team_abbreviation"`
	AwayTeamName         string          `db:"away_team_name"`
	HomeTeamAbbreviation string          `db:"home_team_abbreviation"`
	HomeTeamName         string          `db:"home_team_name"`
	SourceName           string          `db:"source_name"`
	MoneyLineAway        sql.NullInt64   `db:"money_line_away"`
	MoneyLineHome        sql.NullInt64   `db:"money_line_home"`
	PointSpreadAway      sql.NullFloat64 `db:"point_spread_away"`
	PointSpreadHome      sql.NullFloat64 `db:"point_spread_home"`
	OverUnder            sql.NullFloat64 `db:"over_under"`
	DateFetched          time.Time       `db:"date_fetched"`
}

type ownershipRow struct {
	UserID           int64  `db:"user_id"`
	UserName         string `db:"user_name"`
	TeamID           int64  `db:"team_id"`
	TeamAbbreviation string `db:"abbreviation"`
}
