package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/draft"
	qb "github.com/riskibarqy/nfl-draft-league/internal/platform/querybuilder"
)

// unrankedOverallRank sorts teams the provider has not ranked after every
// ranked team.
const unrankedOverallRank = 999

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) ListPicks(ctx context.Context) ([]draft.DraftPick, error) {
	query, args, err := qb.Select("id", "user_id", "team_id", "pick_number", "pick_position").
		From("draft_picks").
		OrderBy("pick_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select draft picks query: %w", err)
	}

	var rows []draftPickModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select draft picks: %w", err)
	}

	out := make([]draft.DraftPick, 0, len(rows))
	for _, row := range rows {
		out = append(out, draft.DraftPick{
			ID:           row.ID,
			UserID:       row.UserID,
			TeamID:       row.TeamID,
			PickNumber:   row.PickNumber,
			PickPosition: row.PickPosition,
		})
	}

	return out, nil
}

// ListStandingRows joins every draft pick with its user and the current
// standing of the drafted team. Picks of teams without standings are left out.
func (r *DraftRepository) ListStandingRows(ctx context.Context) ([]draft.StandingRow, error) {
	query, args, err := qb.Select(
		"dp.pick_position",
		"dp.user_id",
		"u.user_name",
		"s.team_id",
		"t.name AS team_name",
		"COALESCE(s.overall_rank, "+strconv.Itoa(unrankedOverallRank)+") AS overall_rank",
		"s.wins",
	).From("draft_picks dp").
		Join("users u ON u.id = dp.user_id").
		Join("standings s ON s.team_id = dp.team_id").
		Join("teams t ON t.id = s.team_id").
		OrderBy("dp.pick_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select draft standing rows query: %w", err)
	}

	var rows []draftStandingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select draft standing rows: %w", err)
	}

	out := make([]draft.StandingRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, draft.StandingRow{
			PickPosition: row.PickPosition,
			UserID:       row.UserID,
			UserName:     row.UserName,
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			OverallRank:  row.OverallRank,
			Wins:         row.Wins,
		})
	}

	return out, nil
}
