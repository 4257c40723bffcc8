package draft

import "context"

type Repository interface {
	ListPicks(ctx context.Context) ([]DraftPick, error)
	ListStandingRows(ctx context.Context) ([]StandingRow, error)
}
