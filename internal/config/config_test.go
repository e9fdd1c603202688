package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFiles(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.BaseURL)
	assert.Equal(t, 10*time.Minute, cfg.GitHub.CacheTTL)
	assert.Zero(t, cfg.Profile.ListDelay)
	assert.False(t, cfg.Profile.LegacyRemoval)
}

func TestLoadConfig_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
app:
  port: "8080"
db:
  dsn: postgres://localhost/devconnector
github:
  token: from-file
  cache_ttl: 1m
profile:
  list_delay: 3s
  legacy_removal: true
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("GITHUB_TOKEN", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres://localhost/devconnector", cfg.DB.DSN)
	assert.Equal(t, "from-env", cfg.GitHub.Token)
	assert.Equal(t, time.Minute, cfg.GitHub.CacheTTL)
	assert.Equal(t, 3*time.Second, cfg.Profile.ListDelay)
	assert.True(t, cfg.Profile.LegacyRemoval)
}
