package game

import "context"

type Repository interface {
	ListByWeek(ctx context.Context, week int) ([]Game, error)
	Upsert(ctx context.Context, games []Game) error
}
