package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/game"
	qb "github.com/riskibarqy/nfl-draft-league/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) ListByWeek(ctx context.Context, week int) ([]game.Game, error) {
	query, args, err := qb.Select(
		"id", "week", "start_time", "ended_time", "away_team_id", "home_team_id",
		"venue_id", "venue_allegiance", "schedule_status", "original_start_time",
		"delayed_or_postponed_reason", "played_status", "away_score_total", "home_score_total",
	).From("games").
		Where(qb.Eq("week", week)).
		OrderBy("start_time", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by week query: %w", err)
	}

	var rows []gameModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by week: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, game.Game{
			ID:                       row.ID,
			Week:                     row.Week,
			StartTime:                row.StartTime.UTC(),
			EndedTime:                nullTimePtr(row.EndedTime),
			AwayTeamID:               row.AwayTeamID,
			HomeTeamID:               row.HomeTeamID,
			VenueID:                  nullInt64Ptr(row.VenueID),
			VenueAllegiance:          row.VenueAllegiance,
			ScheduleStatus:           row.ScheduleStatus,
			OriginalStartTime:        nullTimePtr(row.OriginalStartTime),
			DelayedOrPostponedReason: row.DelayedOrPostponedReason,
			PlayedStatus:             row.PlayedStatus,
			AwayScoreTotal:           nullIntPtr(row.AwayScoreTotal),
			HomeScoreTotal:           nullIntPtr(row.HomeScoreTotal),
		})
	}

	return out, nil
}

func (r *GameRepository) Upsert(ctx context.Context, games []game.Game) error {
	models := make([]gameModel, 0, len(games))
	for _, item := range games {
		models = append(models, gameModel{
			ID:                       item.ID,
			Week:                     item.Week,
			StartTime:                item.StartTime.UTC(),
			EndedTime:                timePtrToNull(item.EndedTime),
			AwayTeamID:               item.AwayTeamID,
			HomeTeamID:               item.HomeTeamID,
			VenueID:                  int64PtrToNull(item.VenueID),
			VenueAllegiance:          item.VenueAllegiance,
			ScheduleStatus:           item.ScheduleStatus,
			OriginalStartTime:        timePtrToNull(item.OriginalStartTime),
			DelayedOrPostponedReason: item.DelayedOrPostponedReason,
			PlayedStatus:             item.PlayedStatus,
			AwayScoreTotal:           intPtrToNull(item.AwayScoreTotal),
			HomeScoreTotal:           intPtrToNull(item.HomeScoreTotal),
		})
	}
	return upsertAll(ctx, r.db, "games", models, []string{"id"}, "updated_at = NOW()")
}
