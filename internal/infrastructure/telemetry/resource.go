// Package telemetry wires OpenTelemetry tracing, metrics and the zap log
// bridge for the shop backend.
package telemetry

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// ServiceVersion is reported on every exported span, metric and log record
const ServiceVersion = "1.0.0"

const shutdownTimeout = 10 * time.Second

// Collector is the OTLP/gRPC endpoint that spans, metrics and log records
// are pushed to.
type Collector struct {
	Endpoint    string
	Insecure    bool // plaintext gRPC, development only
	ServiceName string
}

func (c Collector) resource() (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(c.ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create resource")
	}
	return res, nil
}

// shutdownWithin flushes and stops a provider, giving up after shutdownTimeout
func shutdownWithin(ctx context.Context, signal string, shutdown func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return errors.Wrapf(shutdown(ctx), "shutdown %s provider", signal)
}
