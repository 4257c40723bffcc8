package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// HealthRepository runs the keep-alive query.
type HealthRepository struct {
	db *sqlx.DB
}

func NewHealthRepository(db *sqlx.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

func (r *HealthRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.GetContext(ctx, &one, `SELECT 1`); err != nil {
		return fmt.Errorf("keep-alive query: %w", err)
	}
	return nil
}
