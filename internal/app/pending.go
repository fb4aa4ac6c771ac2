package app

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/resume-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

// PendingReporter periodically publishes the store size to the pending gauge.
type PendingReporter struct {
	store    domain.FeedbackStore
	interval time.Duration
}

// NewPendingReporter returns nil when store is nil.
func NewPendingReporter(store domain.FeedbackStore, interval time.Duration) *PendingReporter {
	if store == nil {
		return nil
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &PendingReporter{store: store, interval: interval}
}

// Run reports once, then every interval until ctx is done.
func (p *PendingReporter) Run(ctx context.Context) {
	if p == nil {
		return
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.reportOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("pending feedback reporter stopping")
			return
		case <-ticker.C:
			p.reportOnce(ctx)
		}
	}
}

func (p *PendingReporter) reportOnce(ctx context.Context) {
	ctx, span := otel.Tracer("feedback.store").Start(ctx, "PendingReporter.reportOnce")
	defer span.End()

	n, err := p.store.Len(ctx)
	if err != nil {
		span.RecordError(err)
		slog.Error("pending feedback count failed", slog.Any("error", err))
		return
	}
	span.SetAttributes(attribute.Int("feedback.pending", n))
	observability.SetPendingFeedback(n)
}
