package telemetry

import (
	"context"
	"runtime/pprof"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{Enabled: false}, nil)
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_Validation(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "shop"}, zap.NewNop())
	assert.ErrorIs(t, err, errProfilerAddress)

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
	assert.ErrorIs(t, err, errProfilerAppName)
}

func TestProfiler_LinkSpansRequiresProfiling(t *testing.T) {
	before := otel.GetTracerProvider()
	p, err := NewProfiler(ProfilerConfig{SpanProfiles: true}, nil)
	require.NoError(t, err)

	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, nil)
	require.NoError(t, err)
	p.LinkSpans(tp)
	p.LinkSpans(nil)

	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestWithRouteLabels(t *testing.T) {
	var method, route string
	WithRouteLabels(context.Background(), "POST", "/api/v1/orders", func(ctx context.Context) {
		method, _ = pprof.Label(ctx, "method")
		route, _ = pprof.Label(ctx, "route")
	})
	assert.Equal(t, "POST", method)
	assert.Equal(t, "/api/v1/orders", route)
}
