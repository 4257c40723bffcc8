package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	ListStats(ctx context.Context) ([]StatsView, error)
	Upsert(ctx context.Context, teams []Team) error
	UpsertStats(ctx context.Context, stats []Stats) error
}
