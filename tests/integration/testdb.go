// Package integration runs the shop backend against a real PostgreSQL
// database started with testcontainers. The schema and reference data come
// from the embedded migrations.
package integration

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/infrastructure/config"
	"github.com/shopizer/backend/internal/infrastructure/logger"
	"github.com/shopizer/backend/internal/infrastructure/migration"
	"github.com/shopizer/backend/internal/infrastructure/persistence"
)

const postgresImage = "postgres:16-alpine"

// postgres is started by the first test that needs it and migrated once.
// TestMain terminates it.
var postgres pgContainer

type pgContainer struct {
	once      sync.Once
	container *tcpostgres.PostgresContainer
	cfg       config.DatabaseConfig
	err       error
}

func (p *pgContainer) start() {
	ctx := context.Background()
	p.container, p.err = tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("shop"),
		tcpostgres.WithPassword("shop"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	if p.err != nil {
		p.err = errors.Wrap(p.err, "start postgres container")
		return
	}

	host, err := p.container.Host(ctx)
	if err != nil {
		p.err = errors.Wrap(err, "container host")
		return
	}
	port, err := p.container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		p.err = errors.Wrap(err, "container port")
		return
	}
	p.cfg = config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "shop",
		Password:        "shop",
		DBName:          "shop_test",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5,
	}
	p.err = p.migrate()
}

// migrate runs on its own pool: closing the migrator closes the pool too
func (p *pgContainer) migrate() error {
	db, err := persistence.Open(&p.cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migration.EmbeddedSource(), zap.NewNop())
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Up()
}

func (p *pgContainer) terminate() {
	if p.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = p.container.Terminate(ctx)
}

// TestDB is a connection pool to the migrated test database. Tests share the
// database, so each one creates its own stores or uses unique codes.
type TestDB struct {
	DB *gorm.DB
	t  *testing.T
}

// NewSharedTestDB opens a pool on the package's database, starting the
// container on first use. Set TEST_DB_DEBUG to log every statement.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()
	postgres.once.Do(postgres.start)
	require.NoError(t, postgres.err)

	level := gormlogger.Warn
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = gormlogger.Info
	}
	db, err := persistence.Open(&postgres.cfg,
		persistence.WithLogger(logger.NewSQLLogger(zaptest.NewLogger(t), level)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &TestDB{DB: db.DB, t: t}
}

// Language returns a seeded language
func (tdb *TestDB) Language(code string) *reference.Language {
	tdb.t.Helper()
	lang, err := persistence.NewGormLanguageRepository(tdb.DB).FindByCode(context.Background(), code)
	require.NoError(tdb.t, err, "seeded language %s", code)
	return lang
}

// DefaultStore returns the seeded DEFAULT store
func (tdb *TestDB) DefaultStore() *merchant.Store {
	tdb.t.Helper()
	store, err := persistence.NewGormStoreRepository(tdb.DB).FindByCode(context.Background(), merchant.DefaultStoreCode)
	require.NoError(tdb.t, err, "seeded store")
	return store
}

// CreateStore saves a USD store named after code, defaulting to English
func (tdb *TestDB) CreateStore(code string) *merchant.Store {
	tdb.t.Helper()
	store, err := merchant.NewStore(code, "Store "+code, "USD", tdb.Language("en"))
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, persistence.NewGormStoreRepository(tdb.DB).Save(context.Background(), store), "create store %s", code)
	return store
}
