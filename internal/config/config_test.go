package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ganot/nirapod/internal/config"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"NIRAPOD_CONFIG_PATH",
	"NIRAPOD_SERVER_HOST",
	"NIRAPOD_SERVER_PORT",
	"NIRAPOD_TRANSPORT",
	"NIRAPOD_DB_DRIVER",
	"NIRAPOD_DB_PATH",
	"NIRAPOD_DB_DSN",
	"NIRAPOD_LOG_LEVEL",
	"NIRAPOD_LOG_PATH",
	"NIRAPOD_SEED",
	"NIRAPOD_ALERT_DELAY",
	"NIRAPOD_SPLASH_DELAY",
	"NIRAPOD_RETRY_ATTEMPTS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Equal(t, ":memory:", cfg.DB.Path)
	require.Equal(t, 2*time.Second, cfg.Timing.AlertDelay)
	require.Equal(t, 2500*time.Millisecond, cfg.Timing.SplashDelay)
	require.True(t, cfg.Sample.Seed)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nirapod.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
transport:
  mode: stdio
db:
  path: data/nirapod.db
log:
  level: debug
timing:
  alert_delay: 500ms
`), 0o600))

	t.Setenv("NIRAPOD_CONFIG_PATH", path)
	t.Setenv("NIRAPOD_SERVER_PORT", "9100")
	t.Setenv("NIRAPOD_SEED", "false")
	t.Setenv("NIRAPOD_RETRY_ATTEMPTS", "5")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, config.TransportStdio, cfg.Transport.Mode)
	require.Equal(t, "data/nirapod.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 500*time.Millisecond, cfg.Timing.AlertDelay)
	require.False(t, cfg.Sample.Seed)
	require.Equal(t, 5, cfg.Retry.Attempts)
}

func TestLoadInvalidValues(t *testing.T) {
	cases := map[string]string{
		"NIRAPOD_SERVER_PORT":    "eighty",
		"NIRAPOD_SEED":           "maybe",
		"NIRAPOD_ALERT_DELAY":    "soon",
		"NIRAPOD_SPLASH_DELAY":   "-1s",
		"NIRAPOD_RETRY_ATTEMPTS": "x",
		"NIRAPOD_TRANSPORT":      "carrier-pigeon",
		"NIRAPOD_DB_DRIVER":      "mysql",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := config.Load()
			require.Error(t, err)
		})
	}
}

func TestLoadPostgresNeedsDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("NIRAPOD_DB_DRIVER", "postgres")

	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("NIRAPOD_DB_DSN", "postgres://localhost/nirapod")
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.DriverPostgres, cfg.DB.Driver)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("NIRAPOD_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := config.Load()
	require.Error(t, err)
}
