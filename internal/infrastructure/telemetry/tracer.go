package telemetry

import (
	"context"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TracingConfig selects whether spans are exported and how many
type TracingConfig struct {
	Enabled       bool
	Collector     Collector
	SamplingRatio float64
}

// TracerProvider owns the SDK tracer provider. Its zero value, and any
// provider built with tracing disabled, hands out tracers of the global
// no-op provider.
type TracerProvider struct {
	sdk          *sdktrace.TracerProvider
	log          *zap.Logger
	serviceName  string
	spanProfiles bool
}

// NewTracerProvider exports spans to the collector and installs the W3C
// trace-context and baggage propagators globally.
func NewTracerProvider(ctx context.Context, cfg TracingConfig, log *zap.Logger) (*TracerProvider, error) {
	tp := &TracerProvider{log: log, serviceName: cfg.Collector.ServiceName}
	if !cfg.Enabled {
		log.Info("Tracing disabled")
		return tp, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Collector.Endpoint)}
	if cfg.Collector.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create OTLP trace exporter")
	}
	res, err := cfg.Collector.resource()
	if err != nil {
		return nil, err
	}

	tp.sdk = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(parentBasedRatio(cfg.SamplingRatio)),
	)
	otel.SetTracerProvider(tp.sdk)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	log.Info("Tracing enabled",
		zap.String("collector", cfg.Collector.Endpoint),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
	)
	return tp, nil
}

// parentBasedRatio keeps the caller's sampling decision and samples new
// traces at ratio, clamped to [0, 1].
func parentBasedRatio(ratio float64) sdktrace.Sampler {
	root := sdktrace.TraceIDRatioBased(ratio)
	if ratio >= 1 {
		root = sdktrace.AlwaysSample()
	} else if ratio <= 0 {
		root = sdktrace.NeverSample()
	}
	return sdktrace.ParentBased(root)
}

func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.sdk == nil {
		return nil
	}
	return shutdownWithin(ctx, "tracer", tp.sdk.Shutdown)
}

// Tracer returns a named tracer
func (tp *TracerProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	if tp.sdk == nil {
		return otel.GetTracerProvider().Tracer(name, opts...)
	}
	return tp.sdk.Tracer(name, opts...)
}

// Exporting reports whether spans leave the process
func (tp *TracerProvider) Exporting() bool {
	return tp.sdk != nil
}

// ServiceName is the service.name resource attribute of exported spans
func (tp *TracerProvider) ServiceName() string {
	return tp.serviceName
}

// ForceFlush exports buffered spans now
func (tp *TracerProvider) ForceFlush(ctx context.Context) error {
	if tp.sdk == nil {
		return nil
	}
	return tp.sdk.ForceFlush(ctx)
}

// EnableSpanProfiles wraps the global provider so CPU profile samples are
// labelled with span ids. It is a no-op unless spans are exported. Only spans
// longer than the profiler's 10ms sampling interval get profile data.
func (tp *TracerProvider) EnableSpanProfiles() bool {
	if tp.sdk != nil && !tp.spanProfiles {
		otel.SetTracerProvider(otelpyroscope.NewTracerProvider(tp.sdk))
		tp.spanProfiles = true
		tp.log.Info("Span profiles enabled")
	}
	return tp.spanProfiles
}
