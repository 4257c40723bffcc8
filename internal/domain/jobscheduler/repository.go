package jobscheduler

import "context"

// Repository keeps the dispatch audit trail. UpsertEvent keeps the stored
// payload when the incoming one is empty.
type Repository interface {
	UpsertEvent(ctx context.Context, event DispatchEvent) error
	ListRecent(ctx context.Context, limit int) ([]DispatchEvent, error)
}
