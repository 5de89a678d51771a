package telemetry

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogsConfig selects whether zap entries are also exported as OTLP log records
type LogsConfig struct {
	Enabled   bool
	Collector Collector
}

// LoggerProvider owns the SDK logger provider. A nil or disabled provider
// exports nothing.
type LoggerProvider struct {
	sdk *sdklog.LoggerProvider
}

// NewLoggerProvider batches log records to the collector and installs the
// provider globally.
func NewLoggerProvider(ctx context.Context, cfg LogsConfig, log *zap.Logger) (*LoggerProvider, error) {
	if !cfg.Enabled {
		log.Info("Log export disabled")
		return &LoggerProvider{}, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.Collector.Endpoint)}
	if cfg.Collector.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create OTLP log exporter")
	}
	res, err := cfg.Collector.resource()
	if err != nil {
		return nil, err
	}

	sdk := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(sdk)
	return &LoggerProvider{sdk: sdk}, nil
}

func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if !lp.Exporting() {
		return nil
	}
	return shutdownWithin(ctx, "logger", lp.sdk.Shutdown)
}

// Exporting reports whether log records leave the process
func (lp *LoggerProvider) Exporting() bool {
	return lp != nil && lp.sdk != nil
}

// otelCore forwards entries at or above level to the provider. Disabled
// providers get a no-op core.
func otelCore(serviceName string, lp *LoggerProvider, level zapcore.Level) zapcore.Core {
	if !lp.Exporting() {
		return zapcore.NewNopCore()
	}
	core := otelzap.NewCore(serviceName, otelzap.WithLoggerProvider(lp.sdk))
	return &levelFilterCore{Core: core, minLevel: level}
}

// levelFilterCore drops entries below minLevel; otelzap has no level of its own.
type levelFilterCore struct {
	zapcore.Core
	minLevel zapcore.Level
}

func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.minLevel && c.Core.Enabled(lvl)
}

func (c *levelFilterCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(entry.Level) {
		return ce
	}
	return c.Core.Check(entry, ce)
}

func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{Core: c.Core.With(fields), minLevel: c.minLevel}
}

// BridgeLogger tees base into the provider at base's own level. base comes
// back unchanged when nothing is exported.
func BridgeLogger(base *zap.Logger, serviceName string, lp *LoggerProvider) *zap.Logger {
	if !lp.Exporting() {
		return base
	}
	bridge := otelCore(serviceName, lp, zapcore.LevelOf(base.Core()))
	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, bridge)
	}))
}
