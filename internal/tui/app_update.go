package tui

import (
	"tm-cli/internal/keymap"
	"tm-cli/internal/session"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForChange(m.watcher)
	}
	return tickReload()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.syncDetail()
	return m, cmd
}

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case vaultChangedMsg:
		m.reload()
		return m, waitForChange(m.watcher)

	case watchErrMsg:
		m.logger.Warn("file watcher error; polling", "err", msg.err)
		_ = m.watcher.Close()
		m.watcher = nil
		return m, tickReload()

	case reloadTickMsg:
		m.reload()
		return m, tickReload()

	case tea.MouseMsg:
		if m.showDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.st.Mode == session.ModeBrowsing {
		tok, _ := keymap.TokenFromKeyMsg(msg)
		if _, claimed := m.st.Keymap.Lookup(tok); !claimed && !m.st.PendingG {
			switch {
			case key.Matches(msg, keyHelp):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			case key.Matches(msg, keyDetail):
				m.showDetail = !m.showDetail
				return m, nil
			}
		}
	}

	if m.st.Mode != session.ModeBrowsing && msg.Type == tea.KeyRunes {
		// Runes read together (fast typing, pastes) arrive as one message.
		for _, r := range msg.Runes {
			m.machine.Handle(m.st, session.Event{Key: keymap.Char(r)})
		}
	} else {
		k, ok := keymap.KeyFromMsg(msg)
		if !ok {
			return m, nil
		}
		m.machine.Handle(m.st, session.Event{Key: k})
	}
	m.keys = newHelpKeys(m.st.Keymap)
	if m.st.Quit {
		return m, tea.Quit
	}
	return m, nil
}
