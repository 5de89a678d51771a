package migration

import (
	"database/sql"
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shopizer/backend/migrations"
)

// Migrator applies the schema and seed migrations with golang-migrate
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// Source selects where migration files are read from. An empty Path reads
// the files embedded in the binary.
type Source struct {
	Path string
	FS   fs.FS
}

// EmbeddedSource returns the migrations compiled into the binary
func EmbeddedSource() Source {
	return Source{FS: migrations.FS}
}

// DirSource returns migrations read from a directory on disk
func DirSource(path string) Source {
	return Source{Path: path}
}

// New creates a Migrator over an open postgres connection
func New(db *sql.DB, src Source, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create postgres driver")
	}

	var m *migrate.Migrate
	if src.Path != "" {
		m, err = migrate.NewWithDatabaseInstance("file://"+src.Path, "postgres", driver)
	} else {
		sourceFS := src.FS
		if sourceFS == nil {
			sourceFS = migrations.FS
		}
		d, ierr := iofs.New(sourceFS, ".")
		if ierr != nil {
			return nil, pkgerrors.Wrap(ierr, "open embedded migrations")
		}
		m, err = migrate.NewWithInstance("iofs", d, "postgres", driver)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create migrate instance")
	}

	return &Migrator{migrate: m, logger: logger}, nil
}

// apply runs step and logs the resulting version. ErrNoChange is not an error.
func (m *Migrator) apply(action string, step func() error) error {
	err := step()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Schema already up to date", zap.String("action", action))
		return nil
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "migration %s failed", action)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("Migration finished",
		zap.String("action", action),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// Up runs all pending migrations
func (m *Migrator) Up() error {
	return m.apply("up", m.migrate.Up)
}

// Down rolls back all migrations
func (m *Migrator) Down() error {
	return m.apply("down", m.migrate.Down)
}

// Steps applies n migrations, up when positive and down when negative
func (m *Migrator) Steps(n int) error {
	return m.apply("steps", func() error { return m.migrate.Steps(n) })
}

// GoTo migrates to a specific version
func (m *Migrator) GoTo(version uint) error {
	return m.apply("goto", func() error { return m.migrate.Migrate(version) })
}

// Version returns the current migration version, zero when none was applied
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, pkgerrors.Wrap(err, "read migration version")
	}
	return version, dirty, nil
}

// Force sets the migration version without running migrations.
// Only for clearing a dirty state after a failed migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return pkgerrors.Wrapf(err, "force version %d", version)
	}
	return nil
}

// Drop drops every table in the database
func (m *Migrator) Drop() error {
	m.logger.Warn("Dropping database, all data will be lost")
	if err := m.migrate.Drop(); err != nil {
		return pkgerrors.Wrap(err, "drop database")
	}
	return nil
}

// Close releases the source and database handles
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return pkgerrors.Wrap(sourceErr, "close source")
	}
	if dbErr != nil {
		return pkgerrors.Wrap(dbErr, "close database")
	}
	return nil
}
