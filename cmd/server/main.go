// Command server starts the resume scoring HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpserver "github.com/fairyhunter13/resume-scorer/internal/adapter/httpserver"
	"github.com/fairyhunter13/resume-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-scorer/internal/adapter/store/memory"
	"github.com/fairyhunter13/resume-scorer/internal/app"
	"github.com/fairyhunter13/resume-scorer/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	comps, err := app.Build(ctx, cfg, logger)
	if err != nil {
		slog.Error("startup failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := comps.Close(); err != nil {
			slog.Error("failed to close backends", slog.Any("error", err))
		}
	}()

	if cfg.TextExtractor == "tika" {
		if err := app.WaitForExtractor(ctx, comps.ExtractorCheck, cfg.ExtractorWaitTimeout); err != nil {
			// Keep serving; /readyz reports the extractor until it comes up.
			slog.Warn("text extractor not ready", slog.String("url", cfg.TikaURL), slog.Any("error", err))
		}
	}

	if ms, ok := comps.Store.(*memory.Store); ok {
		go ms.RunPeriodic(ctx, cfg.FeedbackSweepInterval)
	}
	go app.NewPendingReporter(comps.Store, cfg.FeedbackSweepInterval).Run(ctx)

	srv := httpserver.NewServer(cfg, comps.EvaluateService(), comps.FeedbackService(cfg), comps.ReadinessChecks())
	handler := app.BuildRouter(cfg, srv, logger)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting",
			slog.Int("port", cfg.Port),
			slog.String("extractor", cfg.TextExtractor),
			slog.String("store", cfg.FeedbackStore),
			slog.String("llm_provider", cfg.LLMProvider),
			slog.String("llm_model", cfg.ActiveModel()))
		errCh <- srvHTTP.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	if err := srvHTTP.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
