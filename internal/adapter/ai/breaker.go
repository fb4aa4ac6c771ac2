// Package ai holds provider-agnostic decorators for domain.LLMClient.
package ai

import (
	"log/slog"
	"sync"
	"time"
)

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	// CircuitClosed lets calls through.
	CircuitClosed CircuitState = iota
	// CircuitOpen rejects calls until the cooldown has elapsed.
	CircuitOpen
	// CircuitHalfOpen lets a single probe through.
	CircuitHalfOpen
)

// String returns a string representation of the circuit state.
func (cs CircuitState) String() string {
	switch cs {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker opens after a run of consecutive failures and probes again
// once the cooldown has passed.
type CircuitBreaker struct {
	mu        sync.Mutex
	name      string
	threshold int
	cooldown  time.Duration
	now       func() time.Time

	state       CircuitState
	failures    int
	openedAt    time.Time
	probeInUse  bool
	totalCalls  int
	totalFailed int
}

// NewCircuitBreaker returns a closed breaker. A threshold below 1 disables it.
func NewCircuitBreaker(name string, threshold int, cooldown time.Duration) *CircuitBreaker {
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &CircuitBreaker{name: name, threshold: threshold, cooldown: cooldown, now: time.Now}
}

// Allow reports whether a call may proceed. In half-open state only one
// caller is admitted until it reports back.
func (cb *CircuitBreaker) Allow() bool {
	if cb.threshold < 1 {
		return true
	}
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if cb.now().Sub(cb.openedAt) < cb.cooldown {
			return false
		}
		cb.state = CircuitHalfOpen
		cb.probeInUse = true
		return true
	default:
		if cb.probeInUse {
			return false
		}
		cb.probeInUse = true
		return true
	}
}

// RecordSuccess closes the circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.totalCalls++
	cb.failures = 0
	cb.probeInUse = false
	if cb.state != CircuitClosed {
		slog.Info("circuit breaker closed after successful probe", slog.String("llm", cb.name))
	}
	cb.state = CircuitClosed
}

// RecordFailure counts a failure and opens the circuit at the threshold, or
// immediately when the half-open probe fails.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.totalCalls++
	cb.totalFailed++
	cb.failures++
	cb.probeInUse = false
	if cb.threshold < 1 {
		return
	}
	if cb.state == CircuitHalfOpen || cb.failures >= cb.threshold {
		if cb.state != CircuitOpen {
			slog.Warn("circuit breaker opened",
				slog.String("llm", cb.name),
				slog.Int("consecutive_failures", cb.failures),
				slog.Int("total_failures", cb.totalFailed),
				slog.Int("total_calls", cb.totalCalls))
		}
		cb.state = CircuitOpen
		cb.openedAt = cb.now()
	}
}

// Release returns an admitted call without an outcome, freeing the half-open probe.
func (cb *CircuitBreaker) Release() {
	cb.mu.Lock()
	cb.probeInUse = false
	cb.mu.Unlock()
}

// State returns the current state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
