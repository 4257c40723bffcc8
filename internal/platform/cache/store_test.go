package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "standings:list", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2024, 9, 10, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return calls.Load(), nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times before expiry, want 1", got)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("third GetOrLoad error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times after expiry, want 2", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("db down")
	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("error result must not be cached")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "odds:week:1", 1)
	store.Set(ctx, "odds:week:2", 2)
	store.Set(ctx, "standings:list", 3)

	if removed := store.DeletePrefix(ctx, "odds:"); removed != 2 {
		t.Fatalf("expected 2 removed keys, got %d", removed)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one remaining key, got %d", store.Len())
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestLoadSlice_ReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	loader := func(context.Context) ([]int, error) {
		return []int{1, 2, 3}, nil
	}

	first, err := LoadSlice(context.Background(), store, "picks", loader)
	if err != nil {
		t.Fatalf("LoadSlice: %v", err)
	}
	first[0] = 99

	second, err := LoadSlice(context.Background(), store, "picks", loader)
	if err != nil {
		t.Fatalf("LoadSlice: %v", err)
	}
	if second[0] != 1 {
		t.Fatalf("cached entry was mutated through a returned slice: %v", second)
	}
}

func TestLoadSlice_PropagatesLoaderError(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	wantErr := errors.New("boom")

	_, err := LoadSlice(context.Background(), store, "picks", func(context.Context) ([]int, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestStore_GetOrLoad_InvalidationDuringLoadIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	_, err := store.GetOrLoad(ctx, "standing:list", func(context.Context) (any, error) {
		store.DeletePrefix(ctx, "standing:")
		return "stale", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad: %v", err)
	}
	if _, ok := store.Get(ctx, "standing:list"); ok {
		t.Fatalf("value loaded across an invalidation must not be cached")
	}

	v, err := store.GetOrLoad(ctx, "standing:list", func(context.Context) (any, error) {
		return "fresh", nil
	})
	if err != nil || v != "fresh" {
		t.Fatalf("expected fresh reload, got %v err=%v", v, err)
	}
	if cached, ok := store.Get(ctx, "standing:list"); !ok || cached != "fresh" {
		t.Fatalf("expected fresh value cached, got %v ok=%t", cached, ok)
	}
}
