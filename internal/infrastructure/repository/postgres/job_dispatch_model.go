package postgres

import (
	"database/sql"
	"time"
)

type jobDispatchInsertModel struct {
	DispatchID  string     `db:"dispatch_id"`
	JobName     string     `db:"job_name"`
	JobPath     string     `db:"job_path"`
	Payload     string     `db:"payload"`
	Status      string     `db:"status"`
	Records     int        `db:"records"`
	SentAt      *time.Time `db:"sent_at"`
	CompletedAt *time.Time `db:"completed_at"`
	FailedAt    *time.Time `db:"failed_at"`
	LastError   *string    `db:"last_error"`
	TraceID     *string    `db:"trace_id"`
	SpanID      *string    `db:"span_id"`
}

type jobDispatchRow struct {
	DispatchID string         `db:"dispatch_id"`
	JobName    string         `db:"job_name"`
	JobPath    string         `db:"job_path"`
	Payload    string         `db:"payload"`
	Status     string         `db:"status"`
	Records    int            `db:"records"`
	LastError  sql.NullString `db:"last_error"`
	TraceID    sql.NullString `db:"trace_id"`
	SpanID     sql.NullString `db:"span_id"`
	UpdatedAt  time.Time      `db:"updated_at"`
}
