package tui

import (
	"io"
	"slices"

	"tm-cli/internal/keymap"
	"tm-cli/internal/session"
	"tm-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// appModel adapts the session controller to Bubble Tea: key messages become session events and
// View renders whatever State holds afterwards.
type appModel struct {
	vault   store.Vault
	machine *session.Machine
	st      *session.State
	logger  *log.Logger

	width  int
	height int

	showDetail bool
	help       help.Model
	keys       helpKeys

	// detail holds the rendered body of the selected task; detailKey identifies what it shows.
	detail    viewport.Model
	detailKey string

	watcher *fsnotify.Watcher
}

func newAppModel(opts Options) appModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	loadKeymap := func() keymap.Keymap { return keymap.LoadUser(opts.ConfigDir, logger) }

	clip := opts.Clipboard
	if clip == nil {
		clip = systemClipboard{}
	}
	m := appModel{
		vault: opts.Vault,
		machine: &session.Machine{
			Store:      opts.Vault,
			LoadKeymap: loadKeymap,
			Clipboard:  clip,
			Logger:     logger,
		},
		logger: logger,
		help:   help.New(),
		detail: viewport.New(0, 0),
	}
	m.st = session.NewState(loadKeymap())
	m.keys = newHelpKeys(m.st.Keymap)
	m.restoreState()
	return m
}

// restoreState applies the saved project, filter and cursor, dropping a project that no longer
// exists.
func (m *appModel) restoreState() {
	saved, err := m.vault.LoadTUIState()
	if err != nil {
		m.logger.Warn("tui state ignored", "err", err)
		saved = &store.TUIState{}
	}
	m.st.Filter = saved.Filter
	m.st.Project = saved.Project
	m.showDetail = saved.ShowDetail

	m.machine.Refresh(m.st)
	if m.st.Project != "" && !slices.Contains(m.st.Projects, m.st.Project) {
		m.st.Project = ""
		m.machine.Refresh(m.st)
	}
	if saved.SelectedID != "" {
		m.st.SelectID(saved.SelectedID)
	}
}

func (m appModel) saveState() {
	ts := &store.TUIState{
		Project:    m.st.Project,
		Filter:     m.st.Filter,
		ShowDetail: m.showDetail,
	}
	if t, ok := m.st.SelectedTask(); ok {
		ts.SelectedID = t.ID
	}
	if err := m.vault.SaveTUIState(ts); err != nil {
		m.logger.Warn("save tui state", "err", err)
	}
}

// reload re-reads the vault after an outside change, keeping the cursor on the same task.
func (m *appModel) reload() {
	id := ""
	if t, ok := m.st.SelectedTask(); ok {
		id = t.ID
	}
	m.machine.Refresh(m.st)
	if id != "" {
		m.st.SelectID(id)
	}
	m.detailKey = ""
}
