package logger

import (
	"errors"
	"strings"
	"syscall"

	pkgerrors "github.com/pkg/errors"
	"github.com/shopizer/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	Output     string // stdout, stderr, or file path
	TimeFormat string
}

// FromAppConfig builds a logger Config from the application log section.
// Production always logs JSON.
func FromAppConfig(app config.AppConfig, log config.LogConfig) *Config {
	format := log.Format
	if app.IsProduction() {
		format = "json"
	}
	return &Config{Level: log.Level, Format: format, Output: log.Output, TimeFormat: defaultTimeFormat}
}

// New builds a zap logger with caller info and stack traces from error
// level up. Entries are never sampled.
func New(cfg *Config) (*zap.Logger, error) {
	output := cfg.Output
	if output == "" {
		output = "stdout"
	}
	layout := cfg.TimeFormat
	if layout == "" {
		layout = defaultTimeFormat
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	zc.Sampling = nil
	zc.OutputPaths = []string{output}
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.MessageKey = "msg"
	zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(layout)
	zc.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	if strings.EqualFold(cfg.Format, "console") {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := zc.Build()
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "build logger writing to %s", output)
	}
	return log, nil
}

// parseLevel falls back to info for unknown names
func parseLevel(name string) zapcore.Level {
	name = strings.ToLower(name)
	if name == "warning" {
		return zapcore.WarnLevel
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Sync flushes buffered entries. Terminals reject fsync; that is not an error.
func Sync(log *zap.Logger) error {
	err := log.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
