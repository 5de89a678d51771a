package telemetry

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// MetricsConfig selects whether instruments are exported and how often
type MetricsConfig struct {
	Enabled   bool
	Collector Collector
	Interval  time.Duration // zero means a minute
}

// MeterProvider owns the SDK meter provider. Disabled providers hand out
// meters of the global no-op provider.
type MeterProvider struct {
	sdk *sdkmetric.MeterProvider
}

// NewMeterProvider pushes metrics to the collector on a fixed interval and
// installs the provider globally.
func NewMeterProvider(ctx context.Context, cfg MetricsConfig, log *zap.Logger) (*MeterProvider, error) {
	if !cfg.Enabled {
		log.Info("Metrics disabled")
		return &MeterProvider{}, nil
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.Collector.Endpoint)}
	if cfg.Collector.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create OTLP metric exporter")
	}
	res, err := cfg.Collector.resource()
	if err != nil {
		return nil, err
	}

	sdk := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(sdk)
	log.Info("Metrics enabled", zap.String("collector", cfg.Collector.Endpoint), zap.Duration("interval", interval))
	return &MeterProvider{sdk: sdk}, nil
}

func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.sdk == nil {
		return nil
	}
	return shutdownWithin(ctx, "meter", mp.sdk.Shutdown)
}

// Meter returns a named meter
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.sdk == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.sdk.Meter(name, opts...)
}

// Exporting reports whether metrics leave the process
func (mp *MeterProvider) Exporting() bool {
	return mp.sdk != nil
}

// Counter records monotonically increasing values.
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a new Counter metric.
func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, errors.Wrapf(err, "create counter %s", name)
	}
	return &Counter{counter: c}, nil
}

// Inc increments the counter by 1.
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Histogram records value distributions.
type Histogram struct {
	histogram metric.Float64Histogram
}

// NewHistogram creates a new Histogram metric with explicit bucket boundaries.
func NewHistogram(meter metric.Meter, name, description, unit string, boundaries []float64) (*Histogram, error) {
	opts := []metric.Float64HistogramOption{metric.WithDescription(description), metric.WithUnit(unit)}
	if len(boundaries) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(boundaries...))
	}
	h, err := meter.Float64Histogram(name, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "create histogram %s", name)
	}
	return &Histogram{histogram: h}, nil
}

// RecordDuration records d in seconds.
func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}

// Metric attribute keys
var (
	AttrStoreCode      = attribute.Key("store.code")
	AttrHTTPMethod     = attribute.Key("http.method")
	AttrHTTPRoute      = attribute.Key("http.route")
	AttrHTTPStatusCode = attribute.Key("http.status_code")
	AttrLoginRealm     = attribute.Key("login.realm")
	AttrLoginOutcome   = attribute.Key("login.outcome")
	AttrCacheName      = attribute.Key("cache.name")
	AttrCacheResult    = attribute.Key("cache.result")
)

// HTTPDurationBuckets are bucket boundaries for request duration in seconds.
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// ShopMetrics holds the instruments recorded by the HTTP layer and services.
type ShopMetrics struct {
	requests    *Counter
	duration    *Histogram
	logins      *Counter
	cacheLookup *Counter
}

// NewShopMetrics creates the shop instruments on meter.
func NewShopMetrics(meter metric.Meter) (*ShopMetrics, error) {
	requests, err := NewCounter(meter, "shop_http_requests_total", "HTTP requests served", "{request}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, "shop_http_request_duration_seconds", "HTTP request latency", "s", HTTPDurationBuckets)
	if err != nil {
		return nil, err
	}
	logins, err := NewCounter(meter, "shop_login_attempts_total", "Login attempts by realm and outcome", "{attempt}")
	if err != nil {
		return nil, err
	}
	cacheLookup, err := NewCounter(meter, "shop_cache_lookups_total", "Reference data cache lookups", "{lookup}")
	if err != nil {
		return nil, err
	}
	return &ShopMetrics{requests: requests, duration: duration, logins: logins, cacheLookup: cacheLookup}, nil
}

// RecordRequest counts one request and its latency. A nil receiver is a no-op.
func (m *ShopMetrics) RecordRequest(ctx context.Context, method, route string, status int, storeCode string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
		AttrHTTPStatusCode.Int(status),
		AttrStoreCode.String(storeCode),
	}
	m.requests.Inc(ctx, attrs...)
	m.duration.RecordDuration(ctx, d, attrs...)
}

// RecordLogin counts a login attempt. realm is "admin" or "customer".
func (m *ShopMetrics) RecordLogin(ctx context.Context, realm string, success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.logins.Inc(ctx, AttrLoginRealm.String(realm), AttrLoginOutcome.String(outcome))
}

// RecordCacheLookup counts a cache hit or miss for the named cache.
func (m *ShopMetrics) RecordCacheLookup(ctx context.Context, name string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookup.Inc(ctx, AttrCacheName.String(name), AttrCacheResult.String(result))
}
