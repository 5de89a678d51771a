package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	catalogapp "github.com/shopizer/backend/internal/application/catalog"
	contentapp "github.com/shopizer/backend/internal/application/content"
	customerapp "github.com/shopizer/backend/internal/application/customer"
	identityapp "github.com/shopizer/backend/internal/application/identity"
	merchantapp "github.com/shopizer/backend/internal/application/merchant"
	referenceapp "github.com/shopizer/backend/internal/application/reference"
	taxapp "github.com/shopizer/backend/internal/application/tax"
	"github.com/shopizer/backend/internal/infrastructure/auth"
	"github.com/shopizer/backend/internal/infrastructure/cache"
	"github.com/shopizer/backend/internal/infrastructure/config"
	"github.com/shopizer/backend/internal/infrastructure/crypto"
	"github.com/shopizer/backend/internal/infrastructure/logger"
	"github.com/shopizer/backend/internal/infrastructure/migration"
	"github.com/shopizer/backend/internal/infrastructure/persistence"
	"github.com/shopizer/backend/internal/infrastructure/pricing"
	"github.com/shopizer/backend/internal/infrastructure/storage"
	"github.com/shopizer/backend/internal/infrastructure/telemetry"
	"github.com/shopizer/backend/internal/interfaces/http/handler"
	"github.com/shopizer/backend/internal/interfaces/http/middleware"
	"github.com/shopizer/backend/internal/interfaces/http/router"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Shopizer API
//	@version		1.0
//	@description	Storefront and administration API of a multi-store shop. Every
//	@description	store-scoped request resolves ?store= and ?lang=.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromAppConfig(cfg.App, cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// Telemetry
	collector := telemetry.Collector{
		Endpoint:    cfg.Telemetry.CollectorEndpoint,
		Insecure:    cfg.Telemetry.Insecure,
		ServiceName: cfg.Telemetry.ServiceName,
	}
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.TracingConfig{
		Enabled:       cfg.Telemetry.Enabled,
		Collector:     collector,
		SamplingRatio: cfg.Telemetry.SamplingRatio,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:   cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		Collector: collector,
		Interval:  cfg.Telemetry.MetricsInterval,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:   cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		Collector: collector,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = telemetry.BridgeLogger(log, cfg.Telemetry.ServiceName, loggerProvider)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.Profiling.Enabled,
		ServerAddress:     cfg.Telemetry.Profiling.ServerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Telemetry.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Telemetry.Profiling.BasicAuthPassword,
		MutexProfiles:     cfg.Telemetry.Profiling.MutexProfiles,
		BlockProfiles:     cfg.Telemetry.Profiling.BlockProfiles,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.Running() && cfg.Telemetry.Profiling.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	metrics, err := telemetry.NewShopMetrics(meterProvider.Meter(cfg.Telemetry.ServiceName))
	if err != nil {
		log.Fatal("Failed to register metrics", zap.Error(err))
	}

	log.Info("Starting shop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	if cfg.Database.MigrateOnStart {
		if err := migrate(&cfg.Database, log); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	gormLog := logger.NewSQLLogger(log, logger.MapGormLogLevel(cfg.Log.Level), logger.WithSlowThreshold(cfg.Database.SlowQuery))
	db, err := persistence.Open(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Fatal("Failed to enable database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Cache. Token revocations always need one; reference data only when enabled.
	sharedCache, err := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.Cache.RequireRedis),
	).CreateCache()
	if err != nil {
		log.Fatal("Failed to create cache", zap.Error(err))
	}
	defer func() {
		_ = sharedCache.Close()
	}()
	var dataCache cache.Cache
	if cfg.Cache.Enabled {
		dataCache = sharedCache
	}

	encryptionKey := cfg.Security.EncryptionKey
	if encryptionKey == "" {
		log.Warn("No encryption key configured, using an ephemeral key: encrypted store configuration will not survive a restart")
		encryptionKey, err = ephemeralKey()
		if err != nil {
			log.Fatal("Failed to generate encryption key", zap.Error(err))
		}
	}
	encryptor, err := crypto.NewEncryptor(encryptionKey)
	if err != nil {
		log.Fatal("Invalid encryption key", zap.Error(err))
	}

	files, err := newObjectStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	// Repositories
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	configurationRepo := persistence.NewGormConfigurationRepository(db.DB, encryptor)
	languageRepo := persistence.NewGormLanguageRepository(db.DB)
	countryRepo := persistence.NewGormCountryRepository(db.DB)
	zoneRepo := persistence.NewGormZoneRepository(db.DB)
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)
	manufacturerRepo := persistence.NewGormManufacturerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	taxClassRepo := persistence.NewGormTaxClassRepository(db.DB)
	taxRateRepo := persistence.NewGormTaxRateRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	optionRepo := persistence.NewGormCustomerOptionRepository(db.DB)
	optionValueRepo := persistence.NewGormCustomerOptionValueRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	groupRepo := persistence.NewGormGroupRepository(db.DB)
	permissionRepo := persistence.NewGormPermissionRepository(db.DB)
	contentRepo := persistence.NewGormContentRepository(db.DB)

	// Services
	encoder := auth.NewBcryptPasswordEncoder(0)
	jwtService := auth.NewJWTService(cfg.JWT)
	revocations := auth.NewRevocationList(sharedCache)
	prices := pricing.NewFormatter(language.Make(cfg.Shop.DefaultLanguage))

	storeService := merchantapp.NewStoreService(storeRepo, configurationRepo, dataCache, cfg.Cache.TTL, metrics, log)
	referenceService := referenceapp.NewService(languageRepo, countryRepo, zoneRepo, currencyRepo, dataCache, cfg.Cache.TTL, metrics, log)

	manufacturerService := catalogapp.NewManufacturerService(
		manufacturerRepo,
		catalogapp.NewManufacturerConverter(),
		catalogapp.NewManufacturerMerger(languageRepo),
		log,
	)
	productService := catalogapp.NewProductService(
		productRepo,
		manufacturerRepo,
		catalogapp.NewProductConverter(prices),
		catalogapp.NewProductMerger(languageRepo, manufacturerRepo, taxClassRepo),
		log,
	)
	taxClassService := taxapp.NewTaxClassService(
		taxClassRepo,
		taxapp.TaxClassConverter{},
		taxapp.TaxClassMerger{},
		log,
	)
	taxRateService := taxapp.NewTaxRateService(
		taxRateRepo,
		taxapp.NewTaxRateConverter(),
		taxapp.NewTaxRateMerger(languageRepo, taxClassRepo, countryRepo, zoneRepo),
		log,
	)
	optionService := customerapp.NewOptionService(
		optionRepo,
		customerapp.NewOptionConverter(),
		customerapp.NewOptionMerger(languageRepo),
		log,
	)
	optionValueService := customerapp.NewOptionValueService(
		optionValueRepo,
		customerapp.NewOptionValueConverter(),
		customerapp.NewOptionValueMerger(languageRepo),
		log,
	)
	customerService := customerapp.NewCustomerService(
		customerRepo,
		customerapp.NewCustomerConverter(),
		customerapp.NewCustomerMerger(languageRepo, countryRepo, optionRepo, optionValueRepo, groupRepo, encoder),
		log,
	)
	contentService := contentapp.NewContentService(
		contentRepo,
		contentapp.NewContentConverter(),
		contentapp.NewContentMerger(languageRepo),
		log,
	)
	fileService := contentapp.NewFileService(files, log)
	userService := identityapp.NewUserService(
		userRepo,
		identityapp.NewUserConverter(permissionRepo),
		identityapp.NewUserMerger(languageRepo, groupRepo, encoder),
		encoder,
		log,
	)
	authService := identityapp.NewAuthService(
		identityapp.NewUserDetailsService(userRepo, permissionRepo, log),
		identityapp.NewCustomerDetailsService(customerRepo, permissionRepo, log),
		userRepo,
		jwtService,
		encoder,
		revocations,
		metrics,
		log,
	)

	if cfg.Shop.AdminUsername != "" {
		store, err := storeService.ResolveStore(ctx, cfg.Shop.DefaultStore)
		if err != nil {
			log.Fatal("Failed to load default store", zap.String("store", cfg.Shop.DefaultStore), zap.Error(err))
		}
		if err := userService.EnsureAdmin(ctx, store, cfg.Shop.AdminUsername, cfg.Shop.AdminEmail, cfg.Shop.AdminPassword); err != nil {
			log.Fatal("Failed to create administrator", zap.Error(err))
		}
	}

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.NewEngine(router.EngineConfig{
		HTTP: cfg.HTTP,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Metrics:         metrics,
		Logger:          log,
		ProfilingLabels: profiler.Running(),
	})

	handlers := router.Handlers{
		System:       handler.NewSystemHandler(db, version, log),
		Reference:    handler.NewReferenceHandler(referenceService),
		Store:        handler.NewStoreHandler(storeService),
		Manufacturer: handler.NewManufacturerHandler(manufacturerService),
		Product:      handler.NewProductHandler(productService),
		Content:      handler.NewContentHandler(contentService, fileService),
		Customer:     handler.NewCustomerHandler(customerService),
		Option:       handler.NewOptionHandler(optionService),
		OptionValue:  handler.NewOptionValueHandler(optionValueService),
		TaxClass:     handler.NewTaxClassHandler(taxClassService),
		TaxRate:      handler.NewTaxRateHandler(taxRateService),
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
	}
	deps := router.Dependencies{
		Stores:      storeService,
		Languages:   referenceService,
		JWT:         jwtService,
		Revocations: revocations,
		Logger:      log,
	}
	if cfg.HTTP.LoginRateLimit > 0 {
		deps.LoginLimiter = middleware.NewRateLimiter(cfg.HTTP.LoginRateLimit, cfg.HTTP.LoginRateWindow)
	}

	engine.GET("/health", handlers.System.Health)
	sections := router.ShopRoutes(handlers, deps)
	router.Mount(engine, router.APIVersion, sections...)
	for _, s := range sections {
		log.Debug("Mounted routes", zap.String("section", s.Name()), zap.Int("routes", len(s.Routes())))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Meter provider shutdown failed", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Logger provider shutdown failed", zap.Error(err))
	}
	_ = profiler.Stop()

	log.Info("Server exited gracefully")
}

// migrate applies pending migrations over a dedicated connection, closed
// by the migrator when done.
func migrate(cfg *config.DatabaseConfig, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return err
	}
	source := migration.EmbeddedSource()
	if cfg.MigrationsPath != "" {
		source = migration.DirSource(cfg.MigrationsPath)
	}
	m, err := migration.New(sqlDB, source, log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return m.Up()
}

// ephemeralKey returns a random hex-encoded AES-128 key
func ephemeralKey() (string, error) {
	key := make([]byte, 16)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}

func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (contentapp.ObjectStorage, error) {
	if cfg.Storage.Provider != "s3" {
		log.Info("Using in-memory file storage")
		return storage.NewMemoryObjectStorage("/static"), nil
	}
	s3, err := storage.NewS3ObjectStorage(ctx, &cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		return nil, err
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info("Using S3 file storage", zap.String("bucket", s3.Bucket()))
	return s3, nil
}
