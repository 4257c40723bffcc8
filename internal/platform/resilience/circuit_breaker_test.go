package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	var transitions []string
	b := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
		OnStateChange: func(from, to CircuitState) {
			transitions = append(transitions, string(from)+"->"+string(to))
		},
	})

	now := time.Date(2024, 9, 8, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}

	want := []string{"closed->open", "open->half_open", "half_open->closed"}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition %d: got %s want %s", i, transitions[i], want[i])
		}
	}
}

func TestCircuitBreaker_ExecuteIgnoresNonFailures(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1})
	notFound := errors.New("status=404")

	err := b.Execute(func() error { return notFound }, func(err error) bool { return false })
	if !errors.Is(err, notFound) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("non-failure error must not open breaker, got %s", state)
	}

	_ = b.Execute(func() error { return errors.New("status=503") }, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", state)
	}
	if err := b.Execute(func() error { return nil }, nil); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 2})
	now := time.Date(2024, 9, 8, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("first probe: %v", err)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("second probe: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected probe limit to reject, got %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected reopen after failed probe, got %s", state)
	}
}
