package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/nfl-draft-league/internal/platform/querybuilder"
)

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func nullFloat64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	out := v.Float64
	return &out
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	out := v.Time.UTC()
	return &out
}

func int64PtrToNull(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func intPtrToNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func timePtrToNull(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: v.UTC(), Valid: true}
}

// optionalString maps blank strings to NULL.
func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// upsertBatchSize keeps the widest model (team_stats) under the 65535
// bind parameter limit.
const upsertBatchSize = 500

// upsertAll writes models in multi-row batches inside one transaction.
func upsertAll[T any](ctx context.Context, db *sqlx.DB, table string, models []T, target []string, extra ...string) error {
	if len(models) == 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert %s: %w", table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(models); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(models))
		query, args, err := qb.UpsertModels(table, models[start:end], target, extra...)
		if err != nil {
			return fmt.Errorf("build upsert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert %s rows %d-%d: %w", table, start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert %s tx: %w", table, err)
	}
	return nil
}
