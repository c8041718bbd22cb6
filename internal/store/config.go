package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// GlobalConfig is the per-user config.json in ConfigDir.
type GlobalConfig struct {
	// VaultPath is the default vault when neither --vault nor TM_VAULT is set.
	VaultPath string `json:"vaultPath,omitempty"`
}

// keymapFileNames are tried in order; the first that exists is the user's keymap source.
var keymapFileNames = []string{"config.lua", "config.toml", "config.yaml", "config.yml"}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching the real config dir).
	if v := strings.TrimSpace(os.Getenv("TM_CONFIG_DIR")); v != "" {
		return v, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tm"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// DefaultVaultDir is ~/TasksVault.
func DefaultVaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "TasksVault"), nil
}

// ResolveVaultDir picks the vault root: explicit flag, then TM_VAULT, then config.json, then
// DefaultVaultDir. A leading ~ is expanded.
func ResolveVaultDir(flag string) (string, error) {
	if v := strings.TrimSpace(flag); v != "" {
		return expandHome(v)
	}
	if v := strings.TrimSpace(os.Getenv("TM_VAULT")); v != "" {
		return expandHome(v)
	}
	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}
	if v := strings.TrimSpace(cfg.VaultPath); v != "" {
		return expandHome(v)
	}
	return DefaultVaultDir()
}

// KeymapPath returns the first keymap config file present in cfgDir, or "" when there is none.
func KeymapPath(cfgDir string) string {
	if strings.TrimSpace(cfgDir) == "" {
		return ""
	}
	for _, name := range keymapFileNames {
		p := filepath.Join(cfgDir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
