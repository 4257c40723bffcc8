package resilience

import "time"

// CircuitBreakerConfig zero values fall back to 5 failures, a 15s open
// window and 2 half-open probes.
type CircuitBreakerConfig struct {
	// OnStateChange runs with the breaker lock held.
	OnStateChange    func(from, to CircuitState)
	OpenTimeout      time.Duration
	FailureThreshold int
	HalfOpenMaxReq   int
	Enabled          bool
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	c.FailureThreshold = atLeast(c.FailureThreshold, 1, 5)
	c.HalfOpenMaxReq = atLeast(c.HalfOpenMaxReq, 1, 2)
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 15 * time.Second
	}
	return c
}

// RetryPolicy makes up to MaxAttempts calls with a fixed Delay between them.
// A policy with fewer than one attempt still makes a single call.
type RetryPolicy struct {
	Delay       time.Duration
	MaxAttempts int
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	p.MaxAttempts = atLeast(p.MaxAttempts, 1, 1)
	p.Delay = max(p.Delay, 0)
	return p
}

func atLeast(v, floor, fallback int) int {
	if v < floor {
		return fallback
	}
	return v
}
