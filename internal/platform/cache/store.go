package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/platform/metrics"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/resilience"
)

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// Store is an in-process TTL cache. Concurrent misses for one key share a
// single load. A ttl of zero keeps entries until they are invalidated.
//
// Every DeletePrefix bumps a generation counter. A load that started before
// the invalidation still answers its callers but is not stored, and callers
// arriving after it start a fresh load.
type Store struct {
	ttl    time.Duration
	now    func() time.Time
	flight resilience.SingleFlight[any]

	mu         sync.RWMutex
	entries    map[string]entry
	generation uint64
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && current.expired(s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}
	s.mu.Lock()
	s.entries[key] = s.newEntry(value)
	s.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix and reports how many were
// removed. Write-through repositories call it after an upsert.
func (s *Store) DeletePrefix(_ context.Context, prefix string) int {
	if prefix == "" {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	removed := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		metrics.CacheHit()
		return value, nil
	}
	metrics.CacheMiss()

	gen := s.currentGeneration()
	flightKey := key + "@" + strconv.FormatUint(gen, 10)
	value, err, _ := s.flight.Do(flightKey, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.setIfGeneration(key, loaded, gen)
		return loaded, nil
	})
	return value, err
}

func (s *Store) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Store) setIfGeneration(key string, value any, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return
	}
	s.entries[key] = s.newEntry(value)
}

func (s *Store) newEntry(value any) entry {
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	return e
}

// LoadSlice is GetOrLoad for slice values. Every caller gets its own copy, so
// mutating a result never touches the cached entry.
func LoadSlice[T any](ctx context.Context, s *Store, key string, loader func(context.Context) ([]T, error)) ([]T, error) {
	v, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]T)
	return append([]T(nil), items...), nil
}
