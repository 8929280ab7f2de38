package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "casewatch.db", cfg.DB.Path)
	require.Equal(t, 300*time.Millisecond, cfg.Sync.Delay)
	require.Equal(t, 500*time.Millisecond, cfg.Sync.SweepDelay)
	require.Equal(t, "stdio", cfg.Transport.Mode)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CASEWATCH_SERVER_PORT", "9090")
	t.Setenv("CASEWATCH_SYNC_DELAY", "1s")
	t.Setenv("CASEWATCH_TRANSPORT_MODE", "http")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, time.Second, cfg.Sync.Delay)
	require.Equal(t, "http", cfg.Transport.Mode)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  path: /tmp/cases.db
registry:
  base_url: https://registry.example.test
sync:
  max_fetch_tries: 5
`), 0o644))
	t.Setenv("CASEWATCH_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/cases.db", cfg.DB.Path)
	require.Equal(t, "https://registry.example.test", cfg.Registry.BaseURL)
	require.Equal(t, 5, cfg.Sync.MaxFetchTries)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("CASEWATCH_SERVER_PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("CASEWATCH_SERVER_PORT", "")
	t.Setenv("CASEWATCH_TRANSPORT_MODE", "carrier-pigeon")
	_, err = Load()
	require.Error(t, err)
}
