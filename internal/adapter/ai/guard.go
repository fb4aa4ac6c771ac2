package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

// Guard wraps an LLM client with a circuit breaker and reasoning cleanup.
type Guard struct {
	next    domain.LLMClient
	breaker *CircuitBreaker
}

var _ domain.LLMClient = (*Guard)(nil)

// NewGuard wraps next. A nil breaker disables fast-failing.
func NewGuard(next domain.LLMClient, breaker *CircuitBreaker) *Guard {
	if breaker == nil {
		breaker = NewCircuitBreaker(next.Model(), 0, 0)
	}
	return &Guard{next: next, breaker: breaker}
}

// Model returns the wrapped client's model id.
func (g *Guard) Model() string { return g.next.Model() }

// Complete forwards to the wrapped client unless the circuit is open.
// Caller cancellation does not count as a provider failure.
func (g *Guard) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !g.breaker.Allow() {
		return "", fmt.Errorf("op=ai.Guard: %w: circuit open for %s", domain.ErrUpstreamTimeout, g.next.Model())
	}
	out, err := g.next.Complete(ctx, systemPrompt, userPrompt)
	switch {
	case err != nil && errors.Is(ctx.Err(), context.Canceled):
		g.breaker.Release()
		return "", err
	case err != nil:
		g.breaker.RecordFailure()
		return "", err
	}
	g.breaker.RecordSuccess()
	return StripReasoning(out), nil
}
