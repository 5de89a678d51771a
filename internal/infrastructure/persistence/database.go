package persistence

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopizer/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const pingTimeout = 2 * time.Second

// Database is the shop's PostgreSQL connection pool
type Database struct {
	DB *gorm.DB
}

type openOptions struct {
	logger  logger.Interface
	plugins []gorm.Plugin
}

// OpenOption configures Open
type OpenOption func(*openOptions)

// WithLogger routes GORM statements to l instead of discarding them
func WithLogger(l logger.Interface) OpenOption {
	return func(o *openOptions) { o.logger = l }
}

// WithPlugins registers GORM plugins before the first query
func WithPlugins(plugins ...gorm.Plugin) OpenOption {
	return func(o *openOptions) { o.plugins = append(o.plugins, plugins...) }
}

// Open connects to PostgreSQL, sizes the pool from cfg and verifies the
// connection. Statements are prepared and cached per connection.
func Open(cfg *config.DatabaseConfig, opts ...OpenOption) (*Database, error) {
	o := openOptions{logger: logger.Discard}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 o.logger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "connect to %s:%d/%s", cfg.Host, cfg.Port, cfg.DBName)
	}
	for _, p := range o.plugins {
		if err := db.Use(p); err != nil {
			return nil, errors.Wrapf(err, "register gorm plugin %s", p.Name())
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get connection pool")
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	d := &Database{DB: db}
	if err := d.Ping(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return d, nil
}

// Ping checks the database answers within a short timeout
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return errors.Wrap(err, "get connection pool")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return errors.Wrap(sqlDB.PingContext(ctx), "ping database")
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return errors.Wrap(err, "get connection pool")
	}
	return sqlDB.Close()
}
