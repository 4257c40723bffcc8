package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/standing"
	qb "github.com/riskibarqy/nfl-draft-league/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) List(ctx context.Context) ([]standing.Standing, error) {
	query, args, err := qb.Select(
		"team_id", "abbreviation", "wins", "losses", "ties", "ot_wins", "ot_losses",
		"win_pct", "points_for", "points_against", "point_differential",
		"conference", "conference_rank", "games_back", "division", "division_rank",
		"playoff_rank", "overall_rank", "home_wins", "away_wins", "streak",
		"official_logo_url", "social_media",
	).From("standings").
		OrderBy("overall_rank NULLS LAST", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select standings query: %w", err)
	}

	var rows []standingModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Standing{
			TeamID:            row.TeamID,
			Abbreviation:      row.Abbreviation,
			Wins:              row.Wins,
			Losses:            row.Losses,
			Ties:              row.Ties,
			OTWins:            row.OTWins,
			OTLosses:          row.OTLosses,
			WinPct:            row.WinPct,
			PointsFor:         row.PointsFor,
			PointsAgainst:     row.PointsAgainst,
			PointDifferential: row.PointDifferential,
			Conference:        row.Conference,
			ConferenceRank:    nullIntPtr(row.ConferenceRank),
			GamesBack:         row.GamesBack,
			Division:          row.Division,
			DivisionRank:      nullIntPtr(row.DivisionRank),
			PlayoffRank:       nullIntPtr(row.PlayoffRank),
			OverallRank:       nullIntPtr(row.OverallRank),
			HomeWins:          row.HomeWins,
			AwayWins:          row.AwayWins,
			Streak:            row.Streak,
			OfficialLogoURL:   row.OfficialLogoURL,
			SocialMedia:       row.SocialMedia,
		})
	}

	return out, nil
}

// ListOwnedRecords returns one row per owned team. Teams without a standings
// row yet report an empty record.
func (r *StandingRepository) ListOwnedRecords(ctx context.Context) ([]standing.OwnedRecord, error) {
	query, args, err := qb.Select(
		"ut.user_id",
		"u.user_name",
		"ut.team_id",
		"COALESCE(s.wins, 0) AS wins",
		"COALESCE(s.losses, 0) AS losses",
		"COALESCE(s.ties, 0) AS ties",
	).From("user_teams ut").
		Join("users u ON u.id = ut.user_id").
		LeftJoin("standings s ON s.team_id = ut.team_id").
		OrderBy("ut.user_id", "ut.team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select owned records query: %w", err)
	}

	var rows []ownedRecordRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select owned records: %w", err)
	}

	out := make([]standing.OwnedRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.OwnedRecord{
			UserID:   row.UserID,
			UserName: row.UserName,
			TeamID:   row.TeamID,
			Wins:     row.Wins,
			Losses:   row.Losses,
			Ties:     row.Ties,
		})
	}

	return out, nil
}

func (r *StandingRepository) Upsert(ctx context.Context, standings []standing.Standing) error {
	models := make([]standingModel, 0, len(standings))
	for _, item := range standings {
		models = append(models, standingModel{
			TeamID:            item.TeamID,
			Abbreviation:      item.Abbreviation,
			Wins:              item.Wins,
			Losses:            item.Losses,
			Ties:              item.Ties,
			OTWins:            item.OTWins,
			OTLosses:          item.OTLosses,
			WinPct:            item.WinPct,
			PointsFor:         item.PointsFor,
			PointsAgainst:     item.PointsAgainst,
			PointDifferential: item.PointDifferential,
			Conference:        item.Conference,
			ConferenceRank:    intPtrToNull(item.ConferenceRank),
			GamesBack:         item.GamesBack,
			Division:          item.Division,
			DivisionRank:      intPtrToNull(item.DivisionRank),
			PlayoffRank:       intPtrToNull(item.PlayoffRank),
			OverallRank:       intPtrToNull(item.OverallRank),
			HomeWins:          item.HomeWins,
			AwayWins:          item.AwayWins,
			Streak:            item.Streak,
			OfficialLogoURL:   item.OfficialLogoURL,
			SocialMedia:       item.SocialMedia,
		})
	}
	return upsertAll(ctx, r.db, "standings", models, []string{"team_id"}, "updated_at = NOW()")
}
