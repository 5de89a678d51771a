package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/shopizer/backend/internal/infrastructure/telemetry"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func TestStartServiceSpan(t *testing.T) {
	sr := recordSpans(t)

	ctx, span := telemetry.StartServiceSpan(context.Background(), "manufacturer", "get",
		telemetry.AttrStoreCode.String("DEFAULT"),
		telemetry.AttrEntityCode.String("acme"),
	)
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "manufacturer.get", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
	assert.Equal(t, telemetry.TracerName, spans[0].InstrumentationScope().Name)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, map[string]string{"store.code": "DEFAULT", "shop.entity_code": "acme"}, attrs)
}

func TestEndSpan(t *testing.T) {
	sr := recordSpans(t)

	run := func(fail bool) (err error) {
		_, span := telemetry.StartServiceSpan(context.Background(), "product", "save")
		defer telemetry.EndSpan(span, &err)
		if fail {
			return errors.New("duplicate sku")
		}
		return nil
	}
	require.NoError(t, run(false))
	require.Error(t, run(true))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Empty(t, spans[0].Events())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "duplicate sku", spans[1].Status().Description)
	require.Len(t, spans[1].Events(), 1)
}
