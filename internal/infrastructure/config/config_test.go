package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
notification:
  concurrency: 2
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load("test", path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Mode)
	assert.Equal(t, 2, cfg.Notification.Concurrency)
	assert.Equal(t, "0 8 * * *", cfg.Notification.DailyCron)
	assert.Equal(t, 5, cfg.Notification.DigestLimit)
	assert.Equal(t, "/", cfg.Auth.Cookie.Path)
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("redis:\n  port: 6379\n"), 0o600))

	t.Setenv("SHELFWATCH_REDIS_PORT", "6380")

	cfg, err := Load("", path)
	require.NoError(t, err)
	assert.Equal(t, 6380, cfg.Redis.Port)
}
