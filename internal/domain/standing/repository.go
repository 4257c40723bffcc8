package standing

import "context"

type Repository interface {
	List(ctx context.Context) ([]Standing, error)
	ListOwnedRecords(ctx context.Context) ([]OwnedRecord, error)
	Upsert(ctx context.Context, standings []Standing) error
}
