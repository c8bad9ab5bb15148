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
	for _, k := range []string{"DB_HOST", "PORT", "JWT_ACCESS_EXPIRY", "SEARCH_MAX_RESULTS", "LOG_RETENTION_DAYS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 50, cfg.SearchMaxResults)
	assert.Equal(t, 30, cfg.LogRetentionDays)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_REFRESH_EXPIRY", "forever")
	t.Setenv("SEARCH_MAX_RESULTS", "-3")

	cfg := Load()
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	assert.Equal(t, 50, cfg.SearchMaxResults)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_NAME", "buscaserv_test")
	t.Setenv("SEARCH_MAX_RESULTS", "10")
	t.Setenv("ADMIN_EMAIL", "admin@buscaserv.com")

	cfg := Load()
	assert.Equal(t, "buscaserv_test", cfg.DBName)
	assert.Equal(t, 10, cfg.SearchMaxResults)
	assert.Equal(t, "admin@buscaserv.com", cfg.AdminEmail)
	assert.Contains(t, cfg.DSN(), "dbname=buscaserv_test")
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BUSCASERV_DOTENV_PROBE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BUSCASERV_DOTENV_PROBE") })

	require.NoError(t, LoadDotenv(path))
	assert.Equal(t, "from-file", os.Getenv("BUSCASERV_DOTENV_PROBE"))
}

func TestLoadDotenv_MissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, LoadDotenv(filepath.Join(t.TempDir(), "absent.env")))
}
