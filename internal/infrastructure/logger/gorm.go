package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultMaxSQLLength = 2000

// SQLLogger writes GORM statements to zap, tagged with the request's store
// and request id. Missing rows are never logged: repositories turn them into
// NotFound errors.
type SQLLogger struct {
	base      *zap.Logger
	level     gormlogger.LogLevel
	slow      time.Duration
	maxSQLLen int
}

// SQLLoggerOption configures a SQLLogger
type SQLLoggerOption func(*SQLLogger)

// WithSlowThreshold logs statements slower than d as warnings. Zero disables it.
func WithSlowThreshold(d time.Duration) SQLLoggerOption {
	return func(l *SQLLogger) { l.slow = d }
}

// WithMaxSQLLength truncates logged statements, e.g. long IN lists
func WithMaxSQLLength(n int) SQLLoggerOption {
	return func(l *SQLLogger) { l.maxSQLLen = n }
}

// NewSQLLogger creates a GORM logger backed by zap
func NewSQLLogger(base *zap.Logger, level gormlogger.LogLevel, opts ...SQLLoggerOption) *SQLLogger {
	l := &SQLLogger{
		base:      base.Named("sql"),
		level:     level,
		slow:      200 * time.Millisecond,
		maxSQLLen: defaultMaxSQLLength,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *SQLLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *SQLLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, msg, data)
}

func (l *SQLLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, msg, data)
}

func (l *SQLLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, msg, data)
}

func (l *SQLLogger) printf(ctx context.Context, at gormlogger.LogLevel, msg string, data []any) {
	if l.level < at {
		return
	}
	sugar := Enrich(ctx, l.base).Sugar()
	switch at {
	case gormlogger.Error:
		sugar.Errorf(msg, data...)
	case gormlogger.Warn:
		sugar.Warnf(msg, data...)
	default:
		sugar.Infof(msg, data...)
	}
}

// Trace logs one executed statement. Errors win over slowness, and plain
// statements are only logged at Info.
func (l *SQLLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	if err != nil && errors.Is(err, gormlogger.ErrRecordNotFound) {
		return
	}

	elapsed := time.Since(begin)
	isSlow := l.slow > 0 && elapsed > l.slow
	switch {
	case err != nil && l.level >= gormlogger.Error:
	case isSlow && l.level >= gormlogger.Warn:
	case err == nil && !isSlow && l.level >= gormlogger.Info:
	default:
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("operation", operation(sql)),
		zap.String("sql", l.truncate(sql)),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	log := Enrich(ctx, l.base)
	switch {
	case err != nil:
		log.Error("SQL Error", append(fields, zap.Error(err))...)
	case isSlow:
		log.Warn("Slow SQL", append(fields, zap.Duration("threshold", l.slow))...)
	default:
		log.Debug("SQL Query", fields...)
	}
}

func (l *SQLLogger) truncate(sql string) string {
	if l.maxSQLLen <= 0 || len(sql) <= l.maxSQLLen {
		return sql
	}
	return sql[:l.maxSQLLen] + "..."
}

// operation is the statement's leading keyword, upper-cased
func operation(sql string) string {
	sql = strings.TrimSpace(sql)
	if i := strings.IndexFunc(sql, func(r rune) bool { return r == ' ' || r == '\n' || r == '\t' }); i > 0 {
		sql = sql[:i]
	}
	return strings.ToUpper(sql)
}

// MapGormLogLevel maps the application log level to a GORM level. Statements
// are only traced at debug/info.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

var _ gormlogger.Interface = (*SQLLogger)(nil)
