package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-draft-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the development league into an empty database. Teams
// are inserted with identity only; the team stats job fills in the rest.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM users`); err != nil {
		return fmt.Errorf("count users for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, u := range memory.SeedUsers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO users (id, user_name)
VALUES (:id, :user_name)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":        u.ID,
			"user_name": u.UserName,
		})
		if err != nil {
			return fmt.Errorf("bind seed user %d query: %w", u.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed user %d: %w", u.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (id, city, name, abbreviation)
VALUES (:id, :city, :name, :abbreviation)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":           t.ID,
			"city":         t.City,
			"name":         t.Name,
			"abbreviation": t.Abbreviation,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %d query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %d: %w", t.ID, err)
		}
	}

	for _, p := range memory.SeedDraftPicks() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO draft_picks (user_id, team_id, pick_number, pick_position)
VALUES (:user_id, :team_id, :pick_number, :pick_position)
ON CONFLICT (pick_number) DO NOTHING`, map[string]any{
			"user_id":       p.UserID,
			"team_id":       p.TeamID,
			"pick_number":   p.PickNumber,
			"pick_position": p.PickPosition,
		})
		if err != nil {
			return fmt.Errorf("bind seed draft pick %d query: %w", p.PickNumber, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed draft pick %d: %w", p.PickNumber, err)
		}
	}

	for _, ut := range memory.SeedUserTeams() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO user_teams (user_id, team_id)
VALUES ($1, $2)
ON CONFLICT (user_id, team_id) DO NOTHING`, ut.UserID, ut.TeamID); err != nil {
			return fmt.Errorf("seed user team user=%d team=%d: %w", ut.UserID, ut.TeamID, err)
		}
	}

	// Seeded ids bypass the sequence.
	if _, err := tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('users', 'id'), (SELECT MAX(id) FROM users))`); err != nil {
		return fmt.Errorf("advance users id sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
