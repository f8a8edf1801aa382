package compile_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthra-lang/asthrac/internal/compile"
)

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestCompileCleanProgramProducesModule(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeSource(t, dir, "main.asthra", `package main;

pub fn main(none) -> void {
	return;
}
`)
	res, err := compile.Compile(context.Background(), []string{path}, compile.Options{})
	require.NoError(err)
	require.Empty(res.Diagnostics)
	require.NotNil(res.Module)
	require.Len(res.Module.Functions, 1)
}

func TestCompileErrorDiagnosticLeavesModuleAbsent(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	dir := t.TempDir()
	path := writeSource(t, dir, "main.asthra", `package main;

fn main(none) -> void {
	return;
}
`)
	res, err := compile.Compile(context.Background(), []string{path}, compile.Options{})
	require.NoError(err)
	assert.Nil(res.Module)
	assert.NotEmpty(res.Diagnostics)
}

func TestCompileMultiFileSharesPackageScope(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	a := writeSource(t, dir, "a.asthra", `package main;

pub fn helper(none) -> i32 {
	return 7;
}
`)
	b := writeSource(t, dir, "b.asthra", `package main;

pub fn main(none) -> i32 {
	return helper(none);
}
`)
	res, err := compile.Compile(context.Background(), []string{a, b}, compile.Options{})
	require.NoError(err)
	require.Empty(res.Diagnostics)
	require.NotNil(res.Module)
	require.Len(res.Module.Functions, 2)
}

func TestCompileParallelFilesMatchesSerialResult(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	a := writeSource(t, dir, "a.asthra", `package main;

pub fn add_one(x: i32) -> i32 {
	return x + 1;
}
`)
	b := writeSource(t, dir, "b.asthra", `package main;

pub fn main(none) -> i32 {
	return add_one(41);
}
`)
	serial, err := compile.Compile(context.Background(), []string{a, b}, compile.Options{})
	require.NoError(err)
	parallel, err := compile.Compile(context.Background(), []string{a, b}, compile.Options{ParallelFiles: true})
	require.NoError(err)

	require.Empty(serial.Diagnostics)
	require.Empty(parallel.Diagnostics)
	require.Len(parallel.Module.Functions, len(serial.Module.Functions))
}

func TestCompileCancelledContextReturnsNoModule(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	dir := t.TempDir()
	path := writeSource(t, dir, "main.asthra", `package main;

pub fn main(none) -> void {
	return;
}
`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := compile.Compile(ctx, []string{path}, compile.Options{})
	require.NoError(err)
	assert.Nil(res.Module)
}

type recordingLogger struct {
	debugs, infos, warns []string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(format string, args ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func TestCompileLoggerReceivesProgressMessages(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeSource(t, dir, "main.asthra", `package main;

pub fn main(none) -> void {
	return;
}
`)
	log := &recordingLogger{}
	_, err := compile.Compile(context.Background(), []string{path}, compile.Options{Logger: log})
	require.NoError(err)
	require.NotEmpty(log.debugs)
}

func TestCompileMissingFileReturnsError(t *testing.T) {
	_, err := compile.Compile(context.Background(), []string{"/nonexistent/path/main.asthra"}, compile.Options{})
	require.Error(t, err)
}

func TestCompileInstanceCacheRoundTrips(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeSource(t, dir, "main.asthra", `package main;

pub fn identity<T>(x: T) -> T {
	return x;
}

pub fn main(none) -> i32 {
	return identity::<i32>(9);
}
`)
	first, err := compile.Compile(context.Background(), []string{path}, compile.Options{})
	require.NoError(err)
	require.Empty(first.Diagnostics)

	second, err := compile.Compile(context.Background(), []string{path}, compile.Options{
		InstanceCache: first.Instances,
	})
	require.NoError(err)
	require.Empty(second.Diagnostics)
}
