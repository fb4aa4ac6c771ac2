package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

// Aggregator runs the scorers and folds their signals into a breakdown.
type Aggregator struct {
	scorers []Scorer
	weights []Weight
	logger  *slog.Logger
}

// NewAggregator validates weights and returns an aggregator. A nil scorer set
// means DefaultScorers; nil weights mean DefaultWeights.
func NewAggregator(scorers []Scorer, weights []Weight, logger *slog.Logger) (*Aggregator, error) {
	if scorers == nil {
		scorers = DefaultScorers()
	}
	if weights == nil {
		weights = DefaultWeights()
	}
	if err := ValidateWeights(weights); err != nil {
		return nil, fmt.Errorf("op=scoring.NewAggregator: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{scorers: scorers, weights: weights, logger: logger}, nil
}

// Weights returns a copy of the active weight table.
func (a *Aggregator) Weights() []Weight {
	out := make([]Weight, len(a.weights))
	copy(out, a.weights)
	return out
}

// Evaluate scores the pair. Scorers run concurrently; a panicking scorer is
// logged and contributes a zero signal.
func (a *Aggregator) Evaluate(ctx context.Context, in Input) domain.ScoreBreakdown {
	signals := make([]Signal, len(a.scorers))
	var g errgroup.Group
	for i, s := range a.scorers {
		g.Go(func() error {
			signals[i] = a.safeScore(ctx, s, in)
			return nil
		})
	}
	_ = g.Wait()

	var b domain.ScoreBreakdown
	for i, s := range a.scorers {
		s.Record(&b, signals[i])
	}
	b.FinalScore = a.Final(b)
	return b
}

// Final computes the weighted sum of the breakdown's sub-scores, clamped to [0,1].
func (a *Aggregator) Final(b domain.ScoreBreakdown) float64 {
	total := 0.0
	for _, w := range a.weights {
		total += w.Weight * clamp01(w.Value(b))
	}
	return clamp01(total)
}

func (a *Aggregator) safeScore(ctx context.Context, s Scorer, in Input) (sig Signal) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.ErrorContext(ctx, "scorer panicked",
				slog.String("scorer", s.Name()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			sig = Signal{}
		}
	}()
	return s.Score(in)
}
