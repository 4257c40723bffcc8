package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/odds"
	qb "github.com/riskibarqy/nfl-draft-league/internal/platform/querybuilder"
)

type OddsRepository struct {
	db *sqlx.DB
}

func NewOddsRepository(db *sqlx.DB) *OddsRepository {
	return &OddsRepository{db: db}
}

func (r *OddsRepository) ListByWeek(ctx context.Context, week int) ([]odds.GameLine, error) {
	query, args, err := qb.Select(
		"gl.id",
		"gl.game_id",
		"gl.week",
		"gl.start_time",
		"gl.away_team_abbreviation",
		"COALESCE(away.name, '') AS away_team_name",
		"gl.home_team_abbreviation",
		"COALESCE(home.name, '') AS home_team_name",
		"gl.source_name",
		"gl.money_line_away",
		"gl.money_line_home",
		"gl.point_spread_away",
		"gl.point_spread_home",
		"gl.over_under",
		"gl.date_fetched",
	).From("game_lines gl").
		LeftJoin("teams away ON away.abbreviation = gl.away_team_abbreviation").
		LeftJoin("teams home ON home.abbreviation = gl.home_team_abbreviation").
		Where(qb.Eq("gl.week", week)).
		OrderBy("gl.start_time", "gl.game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game lines by week query: %w", err)
	}

	var rows []gameLineRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select game lines by week: %w", err)
	}

	out := make([]odds.GameLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, odds.GameLine{
			ID:                   row.ID,
			GameID:               row.GameID,
			Week:                 row.Week,
			StartTime:            row.StartTime.UTC(),
			AwayTeamAbbreviation: row.AwayTeamAbbreviation,
			AwayTeamName:         row.AwayTeamName,
			HomeTeamAbbreviation: row.HomeTeamAbbreviation,
			HomeTeamName:         row.HomeTeamName,
			SourceName:           row.SourceName,
			MoneyLineAway:        nullIntPtr(row.MoneyLineAway),
			MoneyLineHome:        nullIntPtr(row.MoneyLineHome),
			PointSpreadAway:      nullFloat64Ptr(row.PointSpreadAway),
			PointSpreadHome:      nullFloat64Ptr(row.PointSpreadHome),
			OverUnder:            nullFloat64Ptr(row.OverUnder),
			DateFetched:          row.DateFetched.UTC(),
		})
	}

	return out, nil
}

func (r *OddsRepository) UpsertLines(ctx context.Context, lines []odds.GameLine) error {
	models := make([]gameLineUpsertModel, 0, len(lines))
	for _, item := range lines {
		models = append(models, gameLineUpsertModel{
			GameID:               item.GameID,
			Week:                 item.Week,
			StartTime:            item.StartTime.UTC(),
			AwayTeamAbbreviation: item.AwayTeamAbbreviation,
			HomeTeamAbbreviation: item.HomeTeamAbbreviation,
			SourceName:           item.SourceName,
			MoneyLineAway:        item.MoneyLineAway,
			MoneyLineHome:        item.MoneyLineHome,
			PointSpreadAway:      item.PointSpreadAway,
			PointSpreadHome:      item.PointSpreadHome,
			OverUnder:            item.OverUnder,
			DateFetched:          item.DateFetched.UTC(),
		})
	}
	return upsertAll(ctx, r.db, "game_lines", models, []string{"game_id", "source_name"})
}

func (r *OddsRepository) ListOwnerships(ctx context.Context) ([]odds.Ownership, error) {
	query, args, err := qb.Select("ut.user_id", "u.user_name", "ut.team_id", "t.abbreviation").
		From("user_teams ut").
		Join("users u ON u.id = ut.user_id").
		Join("teams t ON t.id = ut.team_id").
		OrderBy("ut.user_id", "ut.team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select ownerships query: %w", err)
	}

	var rows []ownershipRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select ownerships: %w", err)
	}

	out := make([]odds.Ownership, 0, len(rows))
	for _, row := range rows {
		out = append(out, odds.Ownership{
			UserID:           row.UserID,
			UserName:         row.UserName,
			TeamID:           row.TeamID,
			TeamAbbreviation: row.TeamAbbreviation,
		})
	}

	return out, nil
}
