package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthra-lang/asthrac/internal/config"
	"github.com/asthra-lang/asthrac/internal/diag"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	assert := assert.New(t)
	cfg, err := config.Load(filepath.Join(t.TempDir(), "asthra.toml"))
	require.NoError(t, err)
	assert.Equal(config.Default(), cfg)
}

func TestLoadParsesFields(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "asthra.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
target = "x86_64-unknown-linux-gnu"
opt_level = 2
coverage = true
parallel_files = true
disabled_warnings = ["style", "ffi"]
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal("x86_64-unknown-linux-gnu", cfg.Target)
	assert.Equal(2, cfg.OptLevel)
	assert.True(cfg.Coverage)
	assert.True(cfg.ParallelFiles)
	assert.Equal([]diag.Category{"style", diag.CategoryFFI}, cfg.DisabledCategories())
}

func TestLoadMalformedFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "asthra.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadEmptyTargetDefaultsToNative(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "asthra.toml")
	require.NoError(t, os.WriteFile(path, []byte(`opt_level = 1`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "native", cfg.Target)
}
