package memory

import (
	"context"
	"sort"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/jobscheduler"
)

type JobDispatchRepository struct {
	data *Dataset
}

func NewJobDispatchRepository(data *Dataset) *JobDispatchRepository {
	return &JobDispatchRepository{data: data}
}

func (r *JobDispatchRepository) UpsertEvent(_ context.Context, event jobscheduler.DispatchEvent) error {
	event, err := event.Normalize(time.Now())
	if err != nil {
		return err
	}

	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	if existing, ok := r.data.dispatches[event.DispatchID]; ok && len(event.Payload) == 0 {
		event.Payload = existing.Payload
	}
	r.data.dispatches[event.DispatchID] = event

	return nil
}

func (r *JobDispatchRepository) ListRecent(_ context.Context, limit int) ([]jobscheduler.DispatchEvent, error) {
	limit = jobscheduler.ClampListLimit(limit)

	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	out := make([]jobscheduler.DispatchEvent, 0, len(r.data.dispatches))
	for _, event := range r.data.dispatches {
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].DispatchID < out[j].DispatchID
	})
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
