package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// recordingExporter keeps exported records in memory
type recordingExporter struct {
	records []sdklog.Record
}

func (e *recordingExporter) Export(_ context.Context, records []sdklog.Record) error {
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *recordingExporter) Shutdown(context.Context) error   { return nil }
func (e *recordingExporter) ForceFlush(context.Context) error { return nil }

func TestNewLoggerProvider_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, lp.Exporting())
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestBridgeLogger_DisabledReturnsBase(t *testing.T) {
	base := zap.NewNop()
	assert.Same(t, base, BridgeLogger(base, "svc", &LoggerProvider{}))
	assert.Same(t, base, BridgeLogger(base, "svc", nil))
}

func TestBridgeLogger_ForwardsAtBaseLevel(t *testing.T) {
	exporter := &recordingExporter{}
	lp := &LoggerProvider{sdk: sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))}

	core, logs := observer.New(zapcore.WarnLevel)
	log := BridgeLogger(zap.New(core), "shop-backend", lp)

	log.Info("dropped")
	log.Warn("store missing", zap.String("store", "XYZ"))

	assert.Equal(t, 1, logs.Len())
	require.Len(t, exporter.records, 1)
	assert.Equal(t, "store missing", exporter.records[0].Body().AsString())
}

func TestLevelFilterCore(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	filtered := &levelFilterCore{Core: core, minLevel: zapcore.ErrorLevel}

	assert.False(t, filtered.Enabled(zapcore.WarnLevel))
	assert.True(t, filtered.Enabled(zapcore.ErrorLevel))

	with := filtered.With([]zapcore.Field{zap.String("k", "v")})
	assert.False(t, with.Enabled(zapcore.InfoLevel))
}
