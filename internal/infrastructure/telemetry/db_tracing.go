package telemetry

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include query variables in spans, development only
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string        // default postgresql
	TracerProvider  trace.TracerProvider // default the global provider
}

// DefaultDBTracingConfig returns tracing disabled with variables hidden.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin on db plus callbacks that
// tag slow queries and failed statements on the current span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled")
		return nil
	}
	if cfg.SlowQueryThresh == 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.DBSystem == "" {
		cfg.DBSystem = "postgresql"
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(cfg.TracerProvider))
	}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return pkgerrors.Wrap(err, "register otelgorm")
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateSpan(tx, cfg.SlowQueryThresh) }

	cb := db.Callback()
	registrations := []struct {
		name     string
		register func(name string, fn func(*gorm.DB)) error
	}{
		{"otel_timing:before_create", cb.Create().Before("gorm:create").Register},
		{"otel_timing:before_query", cb.Query().Before("gorm:query").Register},
		{"otel_timing:before_update", cb.Update().Before("gorm:update").Register},
		{"otel_timing:before_delete", cb.Delete().Before("gorm:delete").Register},
		{"otel_timing:before_row", cb.Row().Before("gorm:row").Register},
		{"otel_timing:before_raw", cb.Raw().Before("gorm:raw").Register},
	}
	for _, r := range registrations {
		if err := r.register(r.name, before); err != nil {
			return pkgerrors.Wrapf(err, "register %s", r.name)
		}
	}
	afterRegistrations := []struct {
		name     string
		register func(name string, fn func(*gorm.DB)) error
	}{
		{"otel_timing:after_create", cb.Create().After("gorm:create").Before("otel:after_create").Register},
		{"otel_timing:after_query", cb.Query().After("gorm:query").Before("otel:after_query").Register},
		{"otel_timing:after_update", cb.Update().After("gorm:update").Before("otel:after_update").Register},
		{"otel_timing:after_delete", cb.Delete().After("gorm:delete").Before("otel:after_delete").Register},
		{"otel_timing:after_row", cb.Row().After("gorm:row").Before("otel:after_row").Register},
		{"otel_timing:after_raw", cb.Raw().After("gorm:raw").Before("otel:after_raw").Register},
	}
	for _, r := range afterRegistrations {
		if err := r.register(r.name, after); err != nil {
			return pkgerrors.Wrapf(err, "register %s", r.name)
		}
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

func annotateSpan(tx *gorm.DB, slow time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, tx.Error.Error())
		span.RecordError(tx.Error)
	}
	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > slow {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
