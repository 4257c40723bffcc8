package odds

import "context"

type Repository interface {
	ListByWeek(ctx context.Context, week int) ([]GameLine, error)
	UpsertLines(ctx context.Context, lines []GameLine) error
}

type OwnershipRepository interface {
	ListOwnerships(ctx context.Context) ([]Ownership, error)
}
