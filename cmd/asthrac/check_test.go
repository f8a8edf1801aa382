package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	fn()
	require.NoError(t, w.Close())
	os.Stdout = orig
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestRunCheckCleanProgramExitsSuccess(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main.asthra", `package main;

pub fn main(none) -> void {
	return;
}
`)
	var code int
	out := captureStdout(t, func() {
		code = runCheck([]string{"--config", filepath.Join(dir, "asthra.toml"), path})
	})
	assert.Equal(t, ExitSuccess, code)
	assert.Empty(t, out)
}

func TestRunCheckErrorProgramExitsCheckError(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main.asthra", `package main;

fn main(none) -> void {
	return;
}
`)
	var code int
	out := captureStdout(t, func() {
		code = runCheck([]string{"--config", filepath.Join(dir, "asthra.toml"), path})
	})
	assert.Equal(t, ExitCheckError, code)
	assert.NotEmpty(t, out)
}

func TestRunCheckJSONOutputIsWellFormed(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main.asthra", `package main;

fn main(none) -> void {
	return;
}
`)
	var code int
	out := captureStdout(t, func() {
		code = runCheck([]string{"--config", filepath.Join(dir, "asthra.toml"), "--json", path})
	})
	assert.Equal(t, ExitCheckError, code)
	assert.Contains(t, out, `"code"`)
}

func TestRunCheckNoFilesIsUsageError(t *testing.T) {
	dir := t.TempDir()
	code := runCheck([]string{"--config", filepath.Join(dir, "asthra.toml")})
	assert.Equal(t, ExitUsageError, code)
}
