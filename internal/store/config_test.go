package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TM_CONFIG_DIR", dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.VaultPath)

	require.NoError(t, SaveConfig(&GlobalConfig{VaultPath: "/srv/vault"}))
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/vault", cfg.VaultPath)

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.json"), path)
}

func TestResolveVaultDir_Precedence(t *testing.T) {
	t.Setenv("TM_CONFIG_DIR", t.TempDir())
	t.Setenv("TM_VAULT", "")

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ResolveVaultDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "TasksVault"), got)

	require.NoError(t, SaveConfig(&GlobalConfig{VaultPath: "/from/config"}))
	got, err = ResolveVaultDir("")
	require.NoError(t, err)
	assert.Equal(t, "/from/config", got)

	t.Setenv("TM_VAULT", "/from/env")
	got, err = ResolveVaultDir("")
	require.NoError(t, err)
	assert.Equal(t, "/from/env", got)

	got, err = ResolveVaultDir("~/flag")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "flag"), got)
}

func TestKeymapPath_FirstExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.Equal(t, "", KeymapPath(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{}"), 0o644))
	assert.Equal(t, filepath.Join(dir, "config.yaml"), KeymapPath(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(""), 0o644))
	assert.Equal(t, filepath.Join(dir, "config.toml"), KeymapPath(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.lua"), []byte("return {}"), 0o644))
	assert.Equal(t, filepath.Join(dir, "config.lua"), KeymapPath(dir))

	assert.Equal(t, "", KeymapPath(""))
}
