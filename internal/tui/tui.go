package tui

import (
	"tm-cli/internal/session"
	"tm-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Options configures Run.
type Options struct {
	Vault store.Vault

	// ConfigDir is where the keymap config is looked up; empty means built-in keys only.
	ConfigDir string

	Logger *log.Logger

	// Clipboard overrides the system clipboard.
	Clipboard session.Clipboard
}

// Run starts the full-screen task browser and blocks until the user quits. The project, filter
// and cursor are saved to the vault on exit.
func Run(opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	m := newAppModel(opts)
	if w, err := newVaultWatcher(opts.Vault); err != nil {
		m.logger.Warn("file watcher unavailable; polling", "err", err)
	} else {
		m.watcher = w
		defer w.Close()
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if fm, ok := final.(appModel); ok {
		fm.saveState()
	}
	return err
}
