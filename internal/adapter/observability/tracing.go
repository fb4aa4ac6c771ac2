// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/fairyhunter13/resume-scorer/internal/config"
)

// SetupTracing installs the W3C propagator and, when an OTLP endpoint is set,
// a batching tracer provider. The returned shutdown flushes spans and is never nil.
func SetupTracing(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	if cfg.OTLPEndpoint == "" {
		slog.InfoContext(ctx, "tracing disabled: no OTLP endpoint")
		return noopShutdown, nil
	}

	exp, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint), otlptracegrpc.WithInsecure())
	if err != nil {
		return noopShutdown, fmt.Errorf("op=observability.SetupTracing: %w", err)
	}
	tp := NewTracerProvider(cfg, sdktrace.WithBatcher(exp))
	otel.SetTracerProvider(tp)
	slog.InfoContext(ctx, "tracing enabled",
		slog.String("endpoint", cfg.OTLPEndpoint),
		slog.Float64("sample_ratio", cfg.TraceSampleRatio))
	return tp.Shutdown, nil
}

// NewTracerProvider returns a provider tagged with the service resource and
// sampling root spans at cfg.TraceSampleRatio. Extra options add processors.
func NewTracerProvider(cfg config.Config, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	base := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(ServiceResource(cfg)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.TraceSampleRatio))),
	}
	return sdktrace.NewTracerProvider(append(base, opts...)...)
}

// ServiceResource identifies this process in exported spans.
func ServiceResource(cfg config.Config) *resource.Resource {
	return resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceName(cfg.OTELServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
	)
}

func noopShutdown(context.Context) error { return nil }
