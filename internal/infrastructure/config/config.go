// Package config loads the shop backend settings from config.toml and
// SHOP_* environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Shop      ShopConfig      `mapstructure:"shop"`
	Security  SecurityConfig  `mapstructure:"security"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds PostgreSQL connection and pool settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int           `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int           `mapstructure:"conn_max_idle_time"` // minutes
	MigrateOnStart  bool          `mapstructure:"migrate_on_start"`
	MigrationsPath  string        `mapstructure:"migrations_path"` // empty uses the embedded migrations
	SlowQuery       time.Duration `mapstructure:"slow_query"`
}

// RedisConfig holds Redis connection settings. An empty Host disables Redis.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig holds token signing settings. An empty RefreshSecret signs
// refresh tokens with Secret.
type JWTConfig struct {
	Secret                 string        `mapstructure:"secret"`
	RefreshSecret          string        `mapstructure:"refresh_secret"`
	AccessTokenExpiration  time.Duration `mapstructure:"access_token_expiration"`
	RefreshTokenExpiration time.Duration `mapstructure:"refresh_token_expiration"`
	Issuer                 string        `mapstructure:"issuer"`
	MaxRefreshCount        int           `mapstructure:"max_refresh_count"`
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	MaxHeaderBytes   int           `mapstructure:"max_header_bytes"`
	MaxBodySize      int64         `mapstructure:"max_body_size"`
	CORSAllowOrigins []string      `mapstructure:"cors_allow_origins"` // empty allows no cross-origin requests
	CORSAllowMethods []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies   []string      `mapstructure:"trusted_proxies"`
	LoginRateLimit   int           `mapstructure:"login_rate_limit"` // attempts per client and window, 0 disables
	LoginRateWindow  time.Duration `mapstructure:"login_rate_window"`
}

// ShopConfig holds storefront defaults
type ShopConfig struct {
	DefaultStore    string `mapstructure:"default_store"`    // store used when a request names none
	DefaultLanguage string `mapstructure:"default_language"` // language used when a store has none configured
	DefaultPageSize int    `mapstructure:"default_page_size"`
	MaxPageSize     int    `mapstructure:"max_page_size"`
	AdminUsername   string `mapstructure:"admin_username"` // bootstrap administrator created when no user exists
	AdminPassword   string `mapstructure:"admin_password"`
	AdminEmail      string `mapstructure:"admin_email"`
}

type SecurityConfig struct {
	// EncryptionKey is the hex-encoded AES key protecting store configuration values
	EncryptionKey string `mapstructure:"encryption_key"`
}

// StorageConfig holds content file storage settings
type StorageConfig struct {
	Provider          string        `mapstructure:"provider"` // s3 or memory
	Bucket            string        `mapstructure:"bucket"`
	Region            string        `mapstructure:"region"`
	Endpoint          string        `mapstructure:"endpoint"` // S3-compatible servers
	AccessKeyID       string        `mapstructure:"access_key_id"`
	SecretAccessKey   string        `mapstructure:"secret_access_key"`
	UsePathStyle      bool          `mapstructure:"use_path_style"`
	PresignExpiration time.Duration `mapstructure:"presign_expiration"`
}

// CacheConfig holds reference data cache settings
type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	TTL          time.Duration `mapstructure:"ttl"`
	RequireRedis bool          `mapstructure:"require_redis"` // fail startup instead of falling back to memory
}

// TelemetryConfig holds OpenTelemetry export settings
type TelemetryConfig struct {
	Enabled           bool            `mapstructure:"enabled"`
	CollectorEndpoint string          `mapstructure:"collector_endpoint"` // OTLP gRPC, host:port
	SamplingRatio     float64         `mapstructure:"sampling_ratio"`
	ServiceName       string          `mapstructure:"service_name"`
	Insecure          bool            `mapstructure:"insecure"`
	DBTraceEnabled    bool            `mapstructure:"db_trace_enabled"`
	DBLogFullSQL      bool            `mapstructure:"db_log_full_sql"` // SQL text in spans, never in production
	MetricsEnabled    bool            `mapstructure:"metrics_enabled"`
	MetricsInterval   time.Duration   `mapstructure:"metrics_interval"`
	LogsEnabled       bool            `mapstructure:"logs_enabled"`
	Profiling         ProfilingConfig `mapstructure:"profiling"`
}

// ProfilingConfig holds Pyroscope continuous profiling settings
type ProfilingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	ServerAddress     string `mapstructure:"server_address"` // e.g. http://pyroscope:4040
	BasicAuthUser     string `mapstructure:"basic_auth_user"`
	BasicAuthPassword string `mapstructure:"basic_auth_password"`
	MutexProfiles     bool   `mapstructure:"mutex_profiles"`
	BlockProfiles     bool   `mapstructure:"block_profiles"`
	SpanProfiles      bool   `mapstructure:"span_profiles"` // needs tracing
}

// defaults lists every key. Environment variables only reach Unmarshal for
// keys viper knows about, so keys without a useful default are listed too.
var defaults = map[string]any{
	"app.name": "shop-backend",
	"app.env":  "development",
	"app.port": "8080",

	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "shop",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,
	"database.migrate_on_start":   false,
	"database.migrations_path":    "",
	"database.slow_query":         200 * time.Millisecond,

	"redis.host":     "",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"jwt.secret":                   "",
	"jwt.refresh_secret":           "",
	"jwt.access_token_expiration":  30 * time.Minute,
	"jwt.refresh_token_expiration": 7 * 24 * time.Hour,
	"jwt.issuer":                   "shop-backend",
	"jwt.max_refresh_count":        10,

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":       15 * time.Second,
	"http.write_timeout":      15 * time.Second,
	"http.idle_timeout":       time.Minute,
	"http.request_timeout":    30 * time.Second,
	"http.max_header_bytes":   1 << 20,
	"http.max_body_size":      10 << 20,
	"http.cors_allow_origins": []string{},
	"http.cors_allow_methods": []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
	"http.cors_allow_headers": []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.trusted_proxies":    []string{},
	"http.login_rate_limit":   0,
	"http.login_rate_window":  time.Minute,

	"shop.default_store":     "DEFAULT",
	"shop.default_language":  "en",
	"shop.default_page_size": 20,
	"shop.max_page_size":     100,
	"shop.admin_username":    "",
	"shop.admin_password":    "",
	"shop.admin_email":       "admin@shopizer.com",

	"security.encryption_key": "",

	"storage.provider":           "memory",
	"storage.bucket":             "",
	"storage.region":             "us-east-1",
	"storage.endpoint":           "",
	"storage.access_key_id":      "",
	"storage.secret_access_key":  "",
	"storage.use_path_style":     false,
	"storage.presign_expiration": 15 * time.Minute,

	"cache.enabled":       false,
	"cache.ttl":           time.Hour,
	"cache.require_redis": false,

	"telemetry.enabled":            false,
	"telemetry.collector_endpoint": "localhost:4317",
	"telemetry.sampling_ratio":     1.0,
	"telemetry.service_name":       "shop-backend",
	"telemetry.insecure":           false,
	"telemetry.db_trace_enabled":   false,
	"telemetry.db_log_full_sql":    false,
	"telemetry.metrics_enabled":    false,
	"telemetry.metrics_interval":   time.Minute,
	"telemetry.logs_enabled":       false,

	"telemetry.profiling.enabled":             false,
	"telemetry.profiling.server_address":      "",
	"telemetry.profiling.basic_auth_user":     "",
	"telemetry.profiling.basic_auth_password": "",
	"telemetry.profiling.mutex_profiles":      false,
	"telemetry.profiling.block_profiles":      false,
	"telemetry.profiling.span_profiles":       false,
}

// Load reads config.toml from the working directory or /app, then applies
// SHOP_* environment variables, e.g. SHOP_DATABASE_PASSWORD for
// database.password. Missing keys take their defaults.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate reports every invalid setting at once
func (c *Config) validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	db := c.Database
	switch {
	case db.MaxOpenConns <= 0:
		fail("database.max_open_conns must be positive")
	case db.MaxIdleConns < 0:
		fail("database.max_idle_conns cannot be negative")
	case db.MaxIdleConns > db.MaxOpenConns:
		fail("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)", db.MaxIdleConns, db.MaxOpenConns)
	}

	if c.Security.EncryptionKey != "" {
		key, err := hex.DecodeString(c.Security.EncryptionKey)
		switch {
		case err != nil:
			fail("security.encryption_key must be hex encoded: %w", err)
		case len(key) != 16 && len(key) != 24 && len(key) != 32:
			fail("security.encryption_key must decode to 16, 24 or 32 bytes, got %d", len(key))
		}
	}

	switch c.Storage.Provider {
	case "memory":
	case "s3":
		if c.Storage.Bucket == "" {
			fail("storage.bucket is required when storage.provider is s3")
		}
	default:
		fail("storage.provider must be s3 or memory, got %q", c.Storage.Provider)
	}

	if (c.Shop.AdminUsername == "") != (c.Shop.AdminPassword == "") {
		fail("shop.admin_username and shop.admin_password must be set together")
	}
	if c.Shop.DefaultPageSize > c.Shop.MaxPageSize {
		fail("shop.default_page_size (%d) cannot exceed shop.max_page_size (%d)", c.Shop.DefaultPageSize, c.Shop.MaxPageSize)
	}

	if c.App.IsProduction() {
		if len(c.JWT.Secret) < 32 {
			fail("jwt.secret of at least 32 characters is required in production")
		}
		if db.Password == "" {
			fail("database.password is required in production")
		}
		if db.SSLMode == "disable" {
			fail("database.sslmode cannot be disable in production")
		}
		if c.Security.EncryptionKey == "" {
			fail("security.encryption_key is required in production")
		}
		if c.Shop.AdminUsername != "" && len(c.Shop.AdminPassword) < 12 {
			fail("shop.admin_password must be at least 12 characters in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				fail("http.cors_allow_origins cannot contain * in production")
			}
		}
		if c.Telemetry.DBLogFullSQL {
			fail("telemetry.db_log_full_sql must be false in production")
		}
	}

	if c.Telemetry.Profiling.Enabled && c.Telemetry.Profiling.ServerAddress == "" {
		fail("telemetry.profiling.server_address is required when profiling is enabled")
	}
	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		fail("telemetry.sampling_ratio must be between 0 and 1, got %g", c.Telemetry.SamplingRatio)
	}
	return errors.Join(errs...)
}

// DSN returns a postgres:// URL with user and password escaped
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

func (a *AppConfig) IsProduction() bool {
	return a.Env == "production"
}
