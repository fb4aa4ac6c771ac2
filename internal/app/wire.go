// Package app wires adapters, use cases and the HTTP router together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fairyhunter13/resume-scorer/internal/adapter/ai"
	"github.com/fairyhunter13/resume-scorer/internal/adapter/ai/gemini"
	"github.com/fairyhunter13/resume-scorer/internal/adapter/ai/openrouter"
	"github.com/fairyhunter13/resume-scorer/internal/adapter/store/memory"
	"github.com/fairyhunter13/resume-scorer/internal/adapter/store/redisstore"
	"github.com/fairyhunter13/resume-scorer/internal/adapter/textextractor/pdf"
	"github.com/fairyhunter13/resume-scorer/internal/adapter/textextractor/tika"
	"github.com/fairyhunter13/resume-scorer/internal/config"
	"github.com/fairyhunter13/resume-scorer/internal/domain"
	"github.com/fairyhunter13/resume-scorer/internal/scoring"
	"github.com/fairyhunter13/resume-scorer/internal/usecase"
)

// Check is a readiness probe.
type Check func(ctx context.Context) error

func alwaysReady(context.Context) error { return nil }

// Components holds the adapters selected by configuration.
type Components struct {
	Extractor      domain.TextExtractor
	ExtractorCheck Check
	Store          domain.FeedbackStore
	StoreCheck     Check
	Aggregator     *scoring.Aggregator
	// LLM is nil when the selected provider has no API key.
	LLM domain.LLMClient

	closers []func() error
}

// Build selects the extractor, store and LLM client and loads the weight table.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Components, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Components{}
	c.Extractor, c.ExtractorCheck = BuildExtractor(cfg)

	store, check, closer, err := BuildStore(cfg)
	if err != nil {
		return nil, err
	}
	c.Store, c.StoreCheck = store, check
	if closer != nil {
		c.closers = append(c.closers, closer)
	}

	weights, err := config.LoadWeights(cfg.ScoringWeightsFile)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	if c.Aggregator, err = scoring.NewAggregator(nil, weights, logger); err != nil {
		_ = c.Close()
		return nil, err
	}

	if c.LLM, err = BuildLLM(ctx, cfg); err != nil {
		_ = c.Close()
		return nil, err
	}
	if c.LLM == nil {
		logger.Warn("no LLM credentials configured; feedback requests will fail", slog.String("provider", cfg.LLMProvider))
	}
	return c, nil
}

// EvaluateService builds the scoring use case over the selected adapters.
func (c *Components) EvaluateService() usecase.EvaluateService {
	return usecase.NewEvaluateService(c.Extractor, c.Aggregator, c.Store)
}

// FeedbackService builds the feedback use case over the selected adapters.
func (c *Components) FeedbackService(cfg config.Config) usecase.FeedbackService {
	return usecase.NewFeedbackService(c.Store, c.LLM, cfg.LLMTimeout)
}

// Close releases backend connections.
func (c *Components) Close() error {
	var errs []error
	for _, fn := range c.closers {
		errs = append(errs, fn())
	}
	return errors.Join(errs...)
}

// BuildExtractor returns the configured text extractor and its probe.
func BuildExtractor(cfg config.Config) (domain.TextExtractor, Check) {
	if cfg.TextExtractor == "tika" {
		c := tika.New(cfg.TikaURL)
		return c, c.Ping
	}
	return pdf.New(), alwaysReady
}

// BuildStore returns the configured pending-feedback store, its probe, and a
// closer (nil for the memory backend).
func BuildStore(cfg config.Config) (domain.FeedbackStore, Check, func() error, error) {
	if cfg.FeedbackStore == "redis" {
		s, rdb, err := redisstore.NewFromURL(cfg.RedisURL, cfg.FeedbackTTL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("op=app.BuildStore: %w", err)
		}
		return s, s.Ping, rdb.Close, nil
	}
	return memory.New(memory.WithTTL(cfg.FeedbackTTL)), alwaysReady, nil, nil
}

// BuildLLM returns the configured provider client, or nil without credentials.
func BuildLLM(ctx context.Context, cfg config.Config) (domain.LLMClient, error) {
	if !cfg.LLMConfigured() {
		return nil, nil
	}
	var (
		client domain.LLMClient
		err    error
	)
	switch cfg.LLMProvider {
	case "gemini":
		client, err = gemini.New(ctx, gemini.Config{
			APIKey:    cfg.GeminiAPIKey,
			Model:     cfg.GeminiModel,
			MaxTokens: cfg.LLMMaxTokens,
		})
	default:
		client, err = openrouter.New(openrouter.Config{
			APIKey:    cfg.OpenRouterAPIKey,
			BaseURL:   cfg.OpenRouterBaseURL,
			Model:     cfg.LLMModel,
			Referer:   cfg.OpenRouterReferer,
			Title:     cfg.OpenRouterTitle,
			MaxTokens: cfg.LLMMaxTokens,
			Timeout:   cfg.LLMTimeout,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("op=app.BuildLLM: %w", err)
	}
	breaker := ai.NewCircuitBreaker(cfg.ActiveModel(), cfg.LLMBreakerThreshold, cfg.LLMBreakerCooldown)
	return ai.NewGuard(client, breaker), nil
}
