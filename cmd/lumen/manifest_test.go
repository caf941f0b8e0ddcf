package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "lumen.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"

[build]
threads = 4
max-errors = 50
`)

	cfg, err := loadProjectConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Package.Name)
	assert.Equal(t, 4, cfg.Build.Threads)
	assert.EqualValues(t, 50, cfg.Build.MaxErrors)
}

func TestLoadProjectConfigRequiresPackage(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[build]
threads = 2
`)

	_, err := loadProjectConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[package]")
}

func TestFindLumenTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, ok, err := findLumenToml(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "lumen.toml"), found)
}

func TestFindLumenTomlMissing(t *testing.T) {
	// The walk may still find a manifest above the temp dir, but never one
	// inside it.
	dir := t.TempDir()
	found, ok, err := findLumenToml(dir)
	require.NoError(t, err)
	if ok {
		assert.NotEqual(t, filepath.Join(dir, "lumen.toml"), found)
	}
}

func TestExpandArgsLiteralAndDedup(t *testing.T) {
	paths, err := expandArgs([]string{"a.lum", "b.lum", "a.lum"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.lum", "b.lum"}, paths)
}

func TestExpandArgsGlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	for _, name := range []string{"x.lum", "sub/y.lum", "sub/z.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("let a = 1;"), 0o644))
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() {
		require.NoError(t, os.Chdir(wd))
	}()

	paths, err := expandArgs([]string{"**/*.lum"})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Contains(t, paths, "x.lum")
	assert.Contains(t, paths, filepath.Join("sub", "y.lum"))
}
