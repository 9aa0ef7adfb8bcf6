package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, "", nil)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.ServerAddress())
	assert.Equal(t, ModeDevelopment, cfg.Mode)
	assert.Equal(t, LocalBaseAddress, cfg.BaseAddress)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ProductionMode(t *testing.T) {
	cfg, err := Load(nil, "", []string{"APP_ENV=production", "PORT=8081"})
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ProductionBaseAddress, cfg.BaseAddress)
	assert.Equal(t, "8081", cfg.Port)
}

func TestLoad_NodeEnvFallback(t *testing.T) {
	cfg, err := Load(nil, "", []string{"NODE_ENV=production"})
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ProductionBaseAddress, cfg.BaseAddress)

	cfg, err = Load(nil, "", []string{"NODE_ENV=production", "APP_ENV=development"})
	require.NoError(t, err)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, LocalBaseAddress, cfg.BaseAddress)
}

func TestLoad_BaseURLOverride(t *testing.T) {
	cfg, err := Load([]string{"-m", "production"}, "", []string{"BASE_URL=https://s.example.org/"})
	require.NoError(t, err)

	assert.Equal(t, "https://s.example.org", cfg.BaseAddress)
}

func TestLoad_EnvOverridesFlags(t *testing.T) {
	cfg, err := Load(
		[]string{"-p", "9000", "-d", "postgres://flag"},
		"",
		[]string{"DATABASE_DSN=postgres://env", "CORS_ALLOWED_ORIGINS=https://a.io,https://b.io"},
	)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres://env", cfg.DSN)
	assert.Equal(t, []string{"https://a.io", "https://b.io"}, cfg.AllowedOrigins)
}

func TestLoad_Dotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("REDIS_ADDR=localhost:6379\nREDIS_DB=2\nLOG_LEVEL=debug\n"), 0o600))

	cfg, err := Load(nil, path, []string{"LOG_LEVEL=warn"})
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MissingDotenvIsIgnored(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "absent.env"), nil)
	require.NoError(t, err)
}

func TestLoad_BadFlag(t *testing.T) {
	_, err := Load([]string{"-unknown"}, "", nil)
	assert.Error(t, err)
}
