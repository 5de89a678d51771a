package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	keys := []string{
		"SHOP_APP_NAME",
		"SHOP_APP_ENV",
		"SHOP_APP_PORT",
		"SHOP_DATABASE_HOST",
		"SHOP_DATABASE_PORT",
		"SHOP_DATABASE_PASSWORD",
		"SHOP_DATABASE_SSLMODE",
		"SHOP_DATABASE_MAX_OPEN_CONNS",
		"SHOP_DATABASE_MAX_IDLE_CONNS",
		"SHOP_JWT_SECRET",
		"SHOP_SHOP_DEFAULT_STORE",
		"SHOP_SECURITY_ENCRYPTION_KEY",
		"SHOP_STORAGE_PROVIDER",
		"SHOP_STORAGE_BUCKET",
		"SHOP_SHOP_ADMIN_USERNAME",
		"SHOP_SHOP_ADMIN_PASSWORD",
	}
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	clearEnv := func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "shop-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "shop", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "DEFAULT", cfg.Shop.DefaultStore)
		assert.Equal(t, "en", cfg.Shop.DefaultLanguage)
		assert.Equal(t, "memory", cfg.Storage.Provider)
		assert.Equal(t, time.Hour, cfg.Cache.TTL)
		assert.Empty(t, cfg.Redis.Host)
		assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpiration)
	})

	t.Run("loads values from environment variables with SHOP prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_APP_NAME", "test-app")
		os.Setenv("SHOP_APP_PORT", "9000")
		os.Setenv("SHOP_DATABASE_HOST", "testdb.local")
		os.Setenv("SHOP_DATABASE_PORT", "5433")
		os.Setenv("SHOP_SHOP_DEFAULT_STORE", "MAIN")
		defer clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "MAIN", cfg.Shop.DefaultStore)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("SHOP_DATABASE_MAX_IDLE_CONNS", "20")
		defer clearEnv()

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects malformed encryption key", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_SECURITY_ENCRYPTION_KEY", "xyz")
		defer clearEnv()

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hex")
	})

	t.Run("rejects encryption key of wrong length", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_SECURITY_ENCRYPTION_KEY", "00112233")
		defer clearEnv()

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "16, 24 or 32")
	})

	t.Run("s3 storage requires a bucket", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_STORAGE_PROVIDER", "s3")
		defer clearEnv()

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket")
	})

	t.Run("admin bootstrap needs both username and password", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_SHOP_ADMIN_USERNAME", "admin")
		defer clearEnv()

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "set together")
	})

	t.Run("production requires secrets", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_APP_ENV", "production")
		defer clearEnv()

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production accepts a complete configuration", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_APP_ENV", "production")
		os.Setenv("SHOP_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("SHOP_DATABASE_PASSWORD", "pw")
		os.Setenv("SHOP_DATABASE_SSLMODE", "require")
		os.Setenv("SHOP_SECURITY_ENCRYPTION_KEY", "000102030405060708090a0b0c0d0e0f")
		defer clearEnv()

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "shop",
		Password: "p@ss/word",
		DBName:   "shop",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://shop:p%40ss%2Fword@db:5432/shop?sslmode=disable", d.DSN())
}
