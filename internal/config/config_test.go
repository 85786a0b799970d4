package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trustscope.yaml")
	cfg := Default()
	cfg.Platform = "twitter"
	cfg.Batch.Workers = 9
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "twitter", got.Platform)
	assert.Equal(t, 9, got.Batch.Workers)
	assert.Equal(t, cfg.Server, got.Server)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", got.Logging.Level)
	assert.Equal(t, "json", got.Logging.Format)
	assert.Equal(t, "tiktok", got.Platform)
	assert.True(t, got.Demo.Enabled)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Addr, got.Server.Addr)
}

func TestResolveEnv(t *testing.T) {
	t.Setenv("TRUSTSCOPE_DB_PATH", "/tmp/x.db")
	t.Setenv("TRUSTSCOPE_RPS", "12.5")
	t.Setenv("LOG_LEVEL", "warn")
	cfg := Default()
	cfg.ResolveEnv()
	assert.Equal(t, "/tmp/x.db", cfg.Storage.DBPath)
	assert.Equal(t, 12.5, cfg.Server.RPS)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestSaveRejectsEmptyPath(t *testing.T) {
	assert.Error(t, Save("", Default()))
}
