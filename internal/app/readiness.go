package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ReadinessChecks names the probes /readyz runs.
func (c *Components) ReadinessChecks() map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		"extractor": c.ExtractorCheck,
		"store":     c.StoreCheck,
	}
}

// WaitForExtractor polls check with exponential backoff until it succeeds or
// timeout elapses. A non-positive timeout checks once.
func WaitForExtractor(ctx context.Context, check Check, timeout time.Duration) error {
	if timeout <= 0 {
		return check(ctx)
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = timeout

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := check(ctx)
		if err != nil {
			slog.Debug("extractor not ready", slog.Int("attempt", attempt), slog.Any("error", err))
		}
		return err
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return fmt.Errorf("op=app.WaitForExtractor: after %d attempts: %w", attempt, err)
	}
	return nil
}
