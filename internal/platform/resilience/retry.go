package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrRetriesExhausted = errors.New("retries exhausted")

// permanentError stops Retry without further attempts.
type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as non-retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// Retry calls fn until it succeeds, returns a Permanent error, the context is
// done or the policy's attempts are used up. The attempt number passed to fn
// starts at 1. The final error wraps both ErrRetriesExhausted and the last
// error returned by fn.
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context, attempt int) error) error {
	return retryWithSleep(ctx, policy, fn, sleepContext)
}

func retryWithSleep(
	ctx context.Context,
	policy RetryPolicy,
	fn func(ctx context.Context, attempt int) error,
	sleep func(ctx context.Context, d time.Duration) error,
) error {
	policy = policy.withDefaults()

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}

		var permanent permanentError
		if errors.As(lastErr, &permanent) {
			return permanent.err
		}

		if attempt == policy.MaxAttempts {
			break
		}
		if err := sleep(ctx, policy.Delay); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w after %d attempt(s): %w", ErrRetriesExhausted, policy.MaxAttempts, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
