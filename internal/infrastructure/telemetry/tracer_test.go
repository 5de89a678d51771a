package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/shopizer/backend/internal/infrastructure/telemetry"
)

var testCollector = telemetry.Collector{
	Endpoint:    "localhost:14317",
	Insecure:    true,
	ServiceName: "shop-test",
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.TracingConfig{
		Collector:     testCollector,
		SamplingRatio: 1,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tp.Exporting())
	assert.Equal(t, "shop-test", tp.ServiceName())
	assert.NotNil(t, tp.Tracer("catalog"))
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
	assert.False(t, tp.EnableSpanProfiles(), "span profiles need exported spans")
}

func TestNewTracerProvider_Enabled(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping collector test in short mode")
	}
	ctx := context.Background()

	// the gRPC exporter dials lazily, no collector has to listen
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.TracingConfig{
		Enabled:       true,
		Collector:     testCollector,
		SamplingRatio: 0.5,
	}, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, tp.Exporting())

	_, span := tp.Tracer("catalog").Start(ctx, "list manufacturers")
	span.End()

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_ = tp.Shutdown(cancelled)
}

func TestTracerProvider_ZeroValue(t *testing.T) {
	var tp telemetry.TracerProvider
	assert.NotNil(t, tp.Tracer("x"))
	assert.NoError(t, tp.Shutdown(context.Background()))
}
