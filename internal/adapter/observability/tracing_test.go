package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/fairyhunter13/resume-scorer/internal/config"
)

func TestSetupTracing_Disabled(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), config.Config{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}

func TestSetupTracing_WithEndpoint(t *testing.T) {
	// The gRPC exporter connects lazily, so construction succeeds without a collector.
	shutdown, err := SetupTracing(context.Background(), config.Config{
		OTLPEndpoint: "localhost:4317", OTELServiceName: "test-service", AppEnv: "test", TraceSampleRatio: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestNewTracerProvider_SamplesRootSpans(t *testing.T) {
	for _, tc := range []struct {
		ratio float64
		want  int
	}{{ratio: 1, want: 1}, {ratio: 0, want: 0}} {
		rec := tracetest.NewSpanRecorder()
		tp := NewTracerProvider(config.Config{TraceSampleRatio: tc.ratio}, sdktrace.WithSpanProcessor(rec))
		_, span := tp.Tracer("test").Start(context.Background(), "root")
		span.End()
		assert.Len(t, rec.Ended(), tc.want, "ratio %v", tc.ratio)
		require.NoError(t, tp.Shutdown(context.Background()))
	}
}

func TestServiceResource(t *testing.T) {
	res := ServiceResource(config.Config{OTELServiceName: "resume-scorer", AppEnv: "staging"})
	attrs := res.Set()
	name, ok := attrs.Value(attribute.Key("service.name"))
	require.True(t, ok)
	assert.Equal(t, "resume-scorer", name.AsString())
	env, ok := attrs.Value(attribute.Key("deployment.environment"))
	require.True(t, ok)
	assert.Equal(t, "staging", env.AsString())
}
