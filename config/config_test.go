package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "mealtrack")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "mealtrack_test")
	t.Setenv("JWT_SECRET", "test-jwt-secret")
	t.Setenv("GEMINI_API_KEY", "test-api-key")
}

func TestLoadConfig(t *testing.T) {
	t.Run("loads with defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "disable", cfg.DBSSLMode)
		assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
		assert.Equal(t, "meal-images", cfg.S3Bucket)
		assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	})

	t.Run("fails when required variables are missing", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("GEMINI_API_KEY", "")

		cfg, err := LoadConfig()
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})

	t.Run("parses CORS origin list", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORSAllowedOrigins)
	})

	t.Run("parses redis db index", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REDIS_DB", "3")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.RedisDB)
	})
}

func TestGetEnvironment(t *testing.T) {
	t.Run("production when ENV says so", func(t *testing.T) {
		t.Setenv("ENV", "production")
		assert.Equal(t, Production, GetEnvironment())
		assert.True(t, IsProduction())
	})

	t.Run("development otherwise", func(t *testing.T) {
		t.Setenv("ENV", "")
		assert.Equal(t, Development, GetEnvironment())
		assert.False(t, IsProduction())
	})
}

func TestReadSecretEnv(t *testing.T) {
	t.Run("reads secret from file when variable is unset", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jwt_secret")
		require.NoError(t, os.WriteFile(path, []byte("file-secret\n"), 0o600))

		t.Setenv("JWT_SECRET", "")
		t.Setenv("JWT_SECRET_FILE", path)

		assert.Equal(t, "file-secret", readSecretEnv("JWT_SECRET"))
	})

	t.Run("direct value wins over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jwt_secret")
		require.NoError(t, os.WriteFile(path, []byte("file-secret"), 0o600))

		t.Setenv("JWT_SECRET", "env-secret")
		t.Setenv("JWT_SECRET_FILE", path)

		assert.Equal(t, "env-secret", readSecretEnv("JWT_SECRET"))
	})

	t.Run("empty when neither is set", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("JWT_SECRET_FILE", "")

		assert.Equal(t, "", readSecretEnv("JWT_SECRET"))
	})
}
