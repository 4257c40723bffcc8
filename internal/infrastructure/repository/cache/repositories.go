// Package cache decorates read repositories with the in-process TTL store.
// Writes pass through and invalidate every prefix whose read model joins the
// written table.
package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/draft"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/game"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/odds"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/standing"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/team"
	basecache "github.com/riskibarqy/nfl-draft-league/internal/platform/cache"
)

const (
	teamPrefix     = "team:"
	standingPrefix = "standing:"
	gamePrefix     = "game:"
	oddsPrefix     = "odds:"
	draftPrefix    = "draft:"
)

func weekKey(prefix string, week int) string {
	return prefix + "week:" + strconv.Itoa(week)
}

func invalidate(ctx context.Context, store *basecache.Store, prefixes ...string) {
	for _, prefix := range prefixes {
		store.DeletePrefix(ctx, prefix)
	}
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return basecache.LoadSlice(ctx, r.cache, teamPrefix+"list", r.next.List)
}

func (r *TeamRepository) ListStats(ctx context.Context) ([]team.StatsView, error) {
	return basecache.LoadSlice(ctx, r.cache, teamPrefix+"stats", r.next.ListStats)
}

// Upsert also drops draft and odds entries, both of which join team names.
func (r *TeamRepository) Upsert(ctx context.Context, teams []team.Team) error {
	if err := r.next.Upsert(ctx, teams); err != nil {
		return err
	}
	invalidate(ctx, r.cache, teamPrefix, draftPrefix, oddsPrefix)
	return nil
}

func (r *TeamRepository) UpsertStats(ctx context.Context, stats []team.Stats) error {
	if err := r.next.UpsertStats(ctx, stats); err != nil {
		return err
	}
	invalidate(ctx, r.cache, teamPrefix)
	return nil
}

type StandingRepository struct {
	next  standing.Repository
	cache *basecache.Store
}

func NewStandingRepository(next standing.Repository, cache *basecache.Store) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

func (r *StandingRepository) List(ctx context.Context) ([]standing.Standing, error) {
	return basecache.LoadSlice(ctx, r.cache, standingPrefix+"list", r.next.List)
}

func (r *StandingRepository) ListOwnedRecords(ctx context.Context) ([]standing.OwnedRecord, error) {
	return basecache.LoadSlice(ctx, r.cache, standingPrefix+"owned", r.next.ListOwnedRecords)
}

// Upsert also drops draft entries since theoretical wins read standings.
func (r *StandingRepository) Upsert(ctx context.Context, standings []standing.Standing) error {
	if err := r.next.Upsert(ctx, standings); err != nil {
		return err
	}
	invalidate(ctx, r.cache, standingPrefix, draftPrefix)
	return nil
}

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) ListByWeek(ctx context.Context, week int) ([]game.Game, error) {
	return basecache.LoadSlice(ctx, r.cache, weekKey(gamePrefix, week), func(ctx context.Context) ([]game.Game, error) {
		return r.next.ListByWeek(ctx, week)
	})
}

func (r *GameRepository) Upsert(ctx context.Context, games []game.Game) error {
	if err := r.next.Upsert(ctx, games); err != nil {
		return err
	}
	invalidate(ctx, r.cache, gamePrefix)
	return nil
}

// OddsRepository caches game lines by week. Ownerships are cached with them
// and cleared on any line upsert.
type OddsRepository struct {
	next       odds.Repository
	ownerships odds.OwnershipRepository
	cache      *basecache.Store
}

func NewOddsRepository(next odds.Repository, ownerships odds.OwnershipRepository, cache *basecache.Store) *OddsRepository {
	return &OddsRepository{next: next, ownerships: ownerships, cache: cache}
}

func (r *OddsRepository) ListByWeek(ctx context.Context, week int) ([]odds.GameLine, error) {
	return basecache.LoadSlice(ctx, r.cache, weekKey(oddsPrefix, week), func(ctx context.Context) ([]odds.GameLine, error) {
		return r.next.ListByWeek(ctx, week)
	})
}

func (r *OddsRepository) UpsertLines(ctx context.Context, lines []odds.GameLine) error {
	if err := r.next.UpsertLines(ctx, lines); err != nil {
		return err
	}
	invalidate(ctx, r.cache, oddsPrefix)
	return nil
}

func (r *OddsRepository) ListOwnerships(ctx context.Context) ([]odds.Ownership, error) {
	return basecache.LoadSlice(ctx, r.cache, oddsPrefix+"ownerships", r.ownerships.ListOwnerships)
}

type DraftRepository struct {
	next  draft.Repository
	cache *basecache.Store
}

func NewDraftRepository(next draft.Repository, cache *basecache.Store) *DraftRepository {
	return &DraftRepository{next: next, cache: cache}
}

func (r *DraftRepository) ListPicks(ctx context.Context) ([]draft.DraftPick, error) {
	return basecache.LoadSlice(ctx, r.cache, draftPrefix+"picks", r.next.ListPicks)
}

func (r *DraftRepository) ListStandingRows(ctx context.Context) ([]draft.StandingRow, error) {
	return basecache.LoadSlice(ctx, r.cache, draftPrefix+"standing-rows", r.next.ListStandingRows)
}
