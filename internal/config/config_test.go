package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		// t.Setenv restores the previous value once the test finishes.
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("SENDGRID_APIKEY", "sg-key")
		t.Setenv("MAIL_FROM", "shop@example.com")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
		t.Setenv("PAGE_SIZE", "25")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, "sg-key", cfg.SendGridAPIKey)
		assert.Equal(t, "shop@example.com", cfg.MailFrom)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
		assert.Equal(t, 25, cfg.PageSize)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("APP_PORT", "")
		t.Setenv("CORS_ORIGINS", "")
		t.Setenv("PAGE_SIZE", "not-a-number")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
		assert.Equal(t, 10, cfg.PageSize)
	})

	t.Run("Missing DB host", func(t *testing.T) {
		t.Setenv("DB_HOST", "")

		cfg, err := LoadConfig()
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrMissingDBHost)
	})

	t.Run("Production without JWT secret", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")

		cfg, err := LoadConfig()
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrMissingJWTSecret)
	})

	t.Run("Empty JWT secret outside production", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("APP_ENV", "development")
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig()
		assert.NoError(t, err)
	})
}
