package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/jobscheduler"
	qb "github.com/riskibarqy/nfl-draft-league/internal/platform/querybuilder"
)

type JobDispatchRepository struct {
	db *sqlx.DB
}

func NewJobDispatchRepository(db *sqlx.DB) *JobDispatchRepository {
	return &JobDispatchRepository{db: db}
}

func (r *JobDispatchRepository) UpsertEvent(ctx context.Context, event jobscheduler.DispatchEvent) error {
	event, err := event.Normalize(time.Now())
	if err != nil {
		return err
	}
	occurredAt := event.OccurredAt

	payloadJSON, err := marshalPayload(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal job dispatch payload: %w", err)
	}

	model := jobDispatchInsertModel{
		DispatchID: event.DispatchID,
		JobName:    event.JobName,
		JobPath:    event.JobPath,
		Payload:    payloadJSON,
		Status:     string(event.Status),
		Records:    event.Records,
		LastError:  optionalString(event.ErrorMessage),
		TraceID:    optionalString(event.TraceID),
		SpanID:     optionalString(event.SpanID),
	}

	switch event.Status {
	case jobscheduler.StatusSent:
		model.SentAt = &occurredAt
	case jobscheduler.StatusCompleted, jobscheduler.StatusSkipped:
		model.CompletedAt = &occurredAt
	case jobscheduler.StatusFailed:
		model.FailedAt = &occurredAt
	}

	query, args, err := qb.InsertModel("job_dispatches", model, `ON CONFLICT (dispatch_id)
DO UPDATE SET
    job_name = EXCLUDED.job_name,
    job_path = EXCLUDED.job_path,
    payload = CASE
        WHEN EXCLUDED.payload = '{}'::jsonb THEN job_dispatches.payload
        ELSE EXCLUDED.payload
    END,
    status = EXCLUDED.status,
    records = EXCLUDED.records,
    sent_at = COALESCE(job_dispatches.sent_at, EXCLUDED.sent_at),
    completed_at = CASE
        WHEN EXCLUDED.status IN ('completed', 'skipped') THEN EXCLUDED.completed_at
        ELSE job_dispatches.completed_at
    END,
    failed_at = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.failed_at
        WHEN EXCLUDED.status = 'completed' THEN NULL
        ELSE job_dispatches.failed_at
    END,
    last_error = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.last_error
        ELSE NULL
    END,
    trace_id = COALESCE(EXCLUDED.trace_id, job_dispatches.trace_id),
    span_id = COALESCE(EXCLUDED.span_id, job_dispatches.span_id),
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert job dispatch query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert job dispatch dispatch_id=%s status=%s: %w", event.DispatchID, event.Status, err)
	}

	return nil
}

func (r *JobDispatchRepository) ListRecent(ctx context.Context, limit int) ([]jobscheduler.DispatchEvent, error) {

	query, args, err := qb.Select(
		"dispatch_id", "job_name", "job_path", "payload::text AS payload", "status", "records",
		"last_error", "trace_id", "span_id", "updated_at",
	).From("job_dispatches").
		OrderBy("updated_at DESC", "dispatch_id").
		Limit(jobscheduler.ClampListLimit(limit)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select job dispatches query: %w", err)
	}

	var rows []jobDispatchRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select job dispatches: %w", err)
	}

	out := make([]jobscheduler.DispatchEvent, 0, len(rows))
	for _, row := range rows {
		payload := map[string]any{}
		if row.Payload != "" {
			if err := sonic.UnmarshalString(row.Payload, &payload); err != nil {
				return nil, fmt.Errorf("decode job dispatch payload dispatch_id=%s: %w", row.DispatchID, err)
			}
		}
		out = append(out, jobscheduler.DispatchEvent{
			DispatchID:   row.DispatchID,
			JobName:      row.JobName,
			JobPath:      row.JobPath,
			Status:       jobscheduler.DispatchStatus(row.Status),
			Payload:      payload,
			Records:      row.Records,
			ErrorMessage: row.LastError.String,
			OccurredAt:   row.UpdatedAt.UTC(),
			TraceID:      row.TraceID.String,
			SpanID:       row.SpanID.String,
		})
	}

	return out, nil
}

func marshalPayload(payload map[string]any) (string, error) {
	if len(payload) == 0 {
		return "{}", nil
	}
	return sonic.MarshalString(payload)
}
