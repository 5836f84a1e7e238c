package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"VINTAGECRIB_APP_NAME":          os.Getenv("VINTAGECRIB_APP_NAME"),
		"VINTAGECRIB_APP_ENV":           os.Getenv("VINTAGECRIB_APP_ENV"),
		"VINTAGECRIB_APP_PORT":          os.Getenv("VINTAGECRIB_APP_PORT"),
		"VINTAGECRIB_DATABASE_HOST":     os.Getenv("VINTAGECRIB_DATABASE_HOST"),
		"VINTAGECRIB_DATABASE_PASSWORD": os.Getenv("VINTAGECRIB_DATABASE_PASSWORD"),
		"VINTAGECRIB_DATABASE_SSLMODE":  os.Getenv("VINTAGECRIB_DATABASE_SSLMODE"),
		"VINTAGECRIB_JWT_SECRET":        os.Getenv("VINTAGECRIB_JWT_SECRET"),
		"VINTAGECRIB_GATE_FAIL_OPEN":    os.Getenv("VINTAGECRIB_GATE_FAIL_OPEN"),
		"VINTAGECRIB_EBAY_SANDBOX":      os.Getenv("VINTAGECRIB_EBAY_SANDBOX"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "vintagecrib-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "vintagecrib", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "EBAY_US", cfg.Ebay.MarketplaceID)
		assert.Equal(t, 30*time.Second, cfg.Engine.PublishTimeout)
		assert.Equal(t, 5*time.Minute, cfg.Entitlement.TTL)
		assert.True(t, cfg.Gate.FailOpen, "the gate fails open by default")
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("VINTAGECRIB_APP_PORT", "9090")
		os.Setenv("VINTAGECRIB_DATABASE_HOST", "db.internal")
		os.Setenv("VINTAGECRIB_GATE_FAIL_OPEN", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.False(t, cfg.Gate.FailOpen)
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("VINTAGECRIB_APP_ENV", "production")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects ebay sandbox", func(t *testing.T) {
		clearEnv()
		os.Setenv("VINTAGECRIB_APP_ENV", "production")
		os.Setenv("VINTAGECRIB_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("VINTAGECRIB_DATABASE_PASSWORD", "secret")
		os.Setenv("VINTAGECRIB_DATABASE_SSLMODE", "require")
		os.Setenv("VINTAGECRIB_EBAY_SANDBOX", "true")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ebay.sandbox")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "vintagecrib",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "localhost", Port: 6379}
	assert.Equal(t, "localhost:6379", cfg.Addr())
}
