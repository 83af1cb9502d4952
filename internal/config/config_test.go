package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ZAGROS_JWT_SECRET", "test-secret")
	t.Setenv("ZAGROS_ADMIN_USERNAME", "admin")
	t.Setenv("ZAGROS_ADMIN_PASSWORD", "s3cret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Zagros Site API", cfg.AppName)
	require.Equal(t, DriverSQLite, cfg.StorageDriver)
	require.Equal(t, "zagros.db", cfg.SQLitePath)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.Equal(t, 5*time.Minute, cfg.AnalyticsCacheTTL)
	require.Equal(t, ":8080", cfg.HTTPAddress())
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ZAGROS_APP_PORT", "9000")
	t.Setenv("ZAGROS_STORAGE_DRIVER", "FILE")
	t.Setenv("ZAGROS_DATA_DIR", "/var/lib/zagros")
	t.Setenv("ZAGROS_SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DriverFile, cfg.StorageDriver)
	require.Equal(t, "/var/lib/zagros", cfg.DataDir)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, ":9000", cfg.HTTPAddress())
}

func TestLoadPostgresRequiresDatabaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ZAGROS_STORAGE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("ZAGROS_DATABASE_URL", "postgres://localhost/zagros")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DriverPostgres, cfg.StorageDriver)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ZAGROS_STORAGE_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("ZAGROS_JWT_SECRET", "")
	t.Setenv("ZAGROS_ADMIN_USERNAME", "admin")
	t.Setenv("ZAGROS_ADMIN_PASSWORD", "s3cret")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("ZAGROS_JWT_SECRET", "test-secret")
	t.Setenv("ZAGROS_ADMIN_PASSWORD", "")
	_, err = Load()
	require.Error(t, err)
}

func TestHTTPAddressPassthrough(t *testing.T) {
	cfg := Config{AppPort: ":3000"}
	require.Equal(t, ":3000", cfg.HTTPAddress())
}
