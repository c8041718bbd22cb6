package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores small, user-facing UI state for restoring the last screen on relaunch.
//
// The file lives under <vault>/.tm so state is scoped per vault. Callers should tolerate missing
// or invalid data.
type TUIState struct {
	Version int `json:"version"`

	// Project is the current project filter; empty means all projects.
	Project string `json:"project,omitempty"`

	// Filter is the text filter typed in filter mode.
	Filter string `json:"filter,omitempty"`

	// SelectedID is the task under the cursor when the TUI last exited.
	SelectedID string `json:"selectedId,omitempty"`

	ShowDetail bool `json:"showDetail,omitempty"`
}

func (v Vault) tuiStatePath() string {
	return filepath.Join(v.StateDir(), tuiStateFileName)
}

func (v Vault) LoadTUIState() (*TUIState, error) {
	if strings.TrimSpace(v.Dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(v.tuiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupt state reads as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (v Vault) SaveTUIState(st *TUIState) error {
	if st == nil || strings.TrimSpace(v.Dir) == "" {
		return nil
	}
	dir := v.StateDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "tui_state.json.*.tmp", v.tuiStatePath(), b, 0o644)
}
