package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "audit.json", `{
		"root": "/corpora",
		"ok_owners": ["sg01"],
		"fix_perms": true,
		"concurrency": 8
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/corpora", cfg.Root)
	assert.Equal(t, []string{"sg01"}, cfg.OkOwners)
	assert.True(t, cfg.FixPerms)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "audit.yaml", `
root: /corpora
ok_owners:
  - sg01
  - archivist
root_allow:
  - README.md
  - _staging
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/corpora", cfg.Root)
	assert.Equal(t, []string{"sg01", "archivist"}, cfg.OkOwners)
	assert.Equal(t, []string{"README.md", "_staging"}, cfg.RootAllow)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "audit.json", `{"root": `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_NegativeConcurrency(t *testing.T) {
	cfg := Config{Concurrency: -1}
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingRootDir(t *testing.T) {
	cfg := Config{Root: filepath.Join(t.TempDir(), "gone")}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root directory not found")
}

func TestValidate_OK(t *testing.T) {
	dir := t.TempDir()
	groups := writeFile(t, dir, "groups.json", "{}")
	cfg := Config{Root: dir, GroupConfig: groups, Concurrency: 4}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	flags := Config{Root: "/flag/root", Verbose: true}
	file := Config{
		Root:           "/file/root",
		GroupConfig:    "/file/groups.json",
		OkOwners:       []string{"sg01"},
		Concurrency:    4,
		SizeWorryBytes: 100,
		FixPerms:       true,
	}

	merged := flags.MergeWithDefaults(file)
	assert.Equal(t, "/flag/root", merged.Root, "flags override file values")
	assert.Equal(t, "/file/groups.json", merged.GroupConfig)
	assert.Equal(t, []string{"sg01"}, merged.OkOwners)
	assert.Equal(t, 4, merged.Concurrency)
	assert.Equal(t, int64(100), merged.SizeWorryBytes)
	assert.True(t, merged.FixPerms)
	assert.True(t, merged.Verbose)
}
