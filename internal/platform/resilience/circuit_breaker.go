package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// counts is reset on every state change.
type counts struct {
	failures  int // consecutive, closed state only
	probes    int // half-open requests admitted and not yet recorded
	successes int // half-open successes
}

// CircuitBreaker trips after FailureThreshold consecutive failures. Once
// OpenTimeout has elapsed it admits up to HalfOpenMaxReq probes; that many
// successes close it again and any failure reopens it.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu       sync.Mutex
	state    CircuitState
	counts   counts
	openedAt time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

// Execute runs fn when the breaker admits it and records the outcome. Errors
// for which isFailure returns false count as successes.
func (b *CircuitBreaker) Execute(fn func() error, isFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	if err != nil && (isFailure == nil || isFailure(err)) {
		b.RecordFailure()
	} else {
		b.RecordSuccess()
	}
	return err
}

func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case CircuitStateOpen:
		return ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.counts.probes >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.counts.probes++
	}
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case CircuitStateClosed:
		b.counts.failures = 0
	case CircuitStateHalfOpen:
		b.counts.probes = max(b.counts.probes-1, 0)
		b.counts.successes++
		if b.counts.successes >= b.cfg.HalfOpenMaxReq && b.counts.probes == 0 {
			b.setState(CircuitStateClosed)
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case CircuitStateClosed:
		b.counts.failures++
		if b.counts.failures >= b.cfg.FailureThreshold {
			b.setState(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		b.setState(CircuitStateOpen)
	case CircuitStateOpen:
		// A late failure from a request admitted before the trip extends the
		// open window.
		b.openedAt = b.now()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current()
}

// current moves an expired open breaker to half-open. Callers hold b.mu.
func (b *CircuitBreaker) current() CircuitState {
	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		b.setState(CircuitStateHalfOpen)
	}
	return b.state
}

func (b *CircuitBreaker) setState(to CircuitState) {
	from := b.state
	if from == to {
		return
	}

	b.state = to
	b.counts = counts{}
	b.openedAt = time.Time{}
	if to == CircuitStateOpen {
		b.openedAt = b.now()
	}

	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}
