package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_StopsOnFirstSuccess(t *testing.T) {
	t.Parallel()

	var sleeps []time.Duration
	calls := 0
	err := retryWithSleep(context.Background(), RetryPolicy{MaxAttempts: 5, Delay: 5 * time.Second},
		func(_ context.Context, attempt int) error {
			calls++
			if attempt < 3 {
				return errors.New("connection refused")
			}
			return nil
		},
		func(_ context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return nil
		},
	)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if len(sleeps) != 2 || sleeps[0] != 5*time.Second || sleeps[1] != 5*time.Second {
		t.Fatalf("expected two fixed 5s delays, got %v", sleeps)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	dialErr := errors.New("dial tcp: timeout")
	calls := 0
	sleeps := 0
	err := retryWithSleep(context.Background(), RetryPolicy{MaxAttempts: 5, Delay: time.Second},
		func(context.Context, int) error {
			calls++
			return dialErr
		},
		func(context.Context, time.Duration) error {
			sleeps++
			return nil
		},
	)
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}
	if !errors.Is(err, dialErr) {
		t.Fatalf("expected last error to be wrapped, got %v", err)
	}
	if calls != 5 {
		t.Fatalf("expected 5 attempts, got %d", calls)
	}
	if sleeps != 4 {
		t.Fatalf("expected no delay after final attempt, got %d sleeps", sleeps)
	}
}

func TestRetry_PermanentErrorStopsImmediately(t *testing.T) {
	t.Parallel()

	authErr := errors.New("password authentication failed")
	calls := 0
	err := Retry(context.Background(), RetryPolicy{MaxAttempts: 5, Delay: time.Hour},
		func(context.Context, int) error {
			calls++
			return Permanent(authErr)
		},
	)
	if !errors.Is(err, authErr) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("permanent error must not be reported as exhausted")
	}
	if calls != 1 {
		t.Fatalf("expected single attempt, got %d", calls)
	}
}

func TestRetry_ContextCancelledDuringDelay(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, RetryPolicy{MaxAttempts: 3, Delay: time.Hour},
		func(context.Context, int) error {
			calls++
			cancel()
			return errors.New("temporary")
		},
	)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one call before cancellation, got %d", calls)
	}
}

func TestRetryPolicy_Defaults(t *testing.T) {
	t.Parallel()

	got := RetryPolicy{MaxAttempts: 0, Delay: -time.Second}.withDefaults()
	if got.MaxAttempts != 1 || got.Delay != 0 {
		t.Fatalf("unexpected policy: %+v", got)
	}
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	t.Parallel()

	got := CircuitBreakerConfig{}.withDefaults()
	if got.FailureThreshold != 5 || got.HalfOpenMaxReq != 2 || got.OpenTimeout != 15*time.Second {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if kept := (CircuitBreakerConfig{FailureThreshold: 3}).withDefaults(); kept.FailureThreshold != 3 {
		t.Fatalf("explicit threshold overwritten: %+v", kept)
	}
}
