package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of service spans
const TracerName = "github.com/shopizer/backend"

// Span attribute keys. store.code is shared with metrics.
var (
	AttrEntityID   = attribute.Key("shop.entity_id")
	AttrEntityCode = attribute.Key("shop.entity_code")
	AttrPrincipal  = attribute.Key("security.principal")
)

// StartServiceSpan starts an internal span named "service.method" on the
// global tracer. Pair it with EndSpan:
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "manufacturer", "delete",
//		telemetry.AttrStoreCode.String(store.Code))
//	defer telemetry.EndSpan(span, &err)
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan ends span, first marking it failed when *errp holds an error
func EndSpan(span trace.Span, errp *error) {
	if errp != nil && *errp != nil {
		span.RecordError(*errp)
		span.SetStatus(codes.Error, (*errp).Error())
	}
	span.End()
}
