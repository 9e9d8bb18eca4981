package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/dupescan/internal/config"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "dupescan")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.Defaults.Workers)
	assert.Nil(t, cfg.Defaults.Algorithm)
	assert.Empty(t, cfg.Defaults.Exclude)
}

func TestLoad_FullConfig(t *testing.T) {
	writeConfig(t, `
[defaults]
workers = 16
algorithm = "blake3"
format = "json"
min_size = "1K"
max_size = "4G"
progress = false
exclude = [".git/", "*.tmp"]
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.Workers)
	assert.Equal(t, 16, *cfg.Defaults.Workers)

	require.NotNil(t, cfg.Defaults.Algorithm)
	assert.Equal(t, "blake3", *cfg.Defaults.Algorithm)

	require.NotNil(t, cfg.Defaults.Format)
	assert.Equal(t, "json", *cfg.Defaults.Format)

	require.NotNil(t, cfg.Defaults.MinSize)
	assert.Equal(t, "1K", *cfg.Defaults.MinSize)

	require.NotNil(t, cfg.Defaults.MaxSize)
	assert.Equal(t, "4G", *cfg.Defaults.MaxSize)

	require.NotNil(t, cfg.Defaults.Progress)
	assert.False(t, *cfg.Defaults.Progress)

	assert.Equal(t, []string{".git/", "*.tmp"}, cfg.Defaults.Exclude)
}

func TestLoad_PartialConfig(t *testing.T) {
	writeConfig(t, `
[defaults]
format = "table"
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Nil(t, cfg.Defaults.Workers)
	assert.Nil(t, cfg.Defaults.Progress)

	require.NotNil(t, cfg.Defaults.Format)
	assert.Equal(t, "table", *cfg.Defaults.Format)
}

func TestLoad_InvalidTOML(t *testing.T) {
	writeConfig(t, "invalid [[[")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadFile_Directory(t *testing.T) {
	_, err := config.LoadFile(t.TempDir())
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/dupescan/config.toml", config.Path())
}

func TestPath_HomeFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, "/home/tester/.config/dupescan/config.toml", config.Path())
}
