package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, mp.Exporting())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestShopMetrics_RecordsInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	m, err := NewShopMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordRequest(ctx, "GET", "/api/v1/products", 200, "DEFAULT", 15*time.Millisecond)
	m.RecordRequest(ctx, "GET", "/api/v1/products", 200, "DEFAULT", 30*time.Millisecond)
	m.RecordLogin(ctx, "admin", false)
	m.RecordCacheLookup(ctx, "languages", true)

	metrics := collect(t, reader)

	requests, ok := metrics["shop_http_requests_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, requests.DataPoints, 1)
	assert.Equal(t, int64(2), requests.DataPoints[0].Value)

	duration, ok := metrics["shop_http_request_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, duration.DataPoints, 1)
	assert.Equal(t, uint64(2), duration.DataPoints[0].Count)

	logins, ok := metrics["shop_login_attempts_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	outcome, _ := logins.DataPoints[0].Attributes.Value(AttrLoginOutcome)
	assert.Equal(t, "failure", outcome.AsString())

	_, ok = metrics["shop_cache_lookups_total"]
	assert.True(t, ok)
}

func TestShopMetrics_NilIsNoop(t *testing.T) {
	var m *ShopMetrics
	assert.NotPanics(t, func() {
		m.RecordRequest(context.Background(), "GET", "/", 200, "", time.Second)
		m.RecordLogin(context.Background(), "customer", true)
		m.RecordCacheLookup(context.Background(), "zones", false)
	})
}
