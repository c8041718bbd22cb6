package tui

import (
	"tm-cli/internal/keymap"

	"github.com/charmbracelet/bubbles/key"
)

// helpKeys is the help view's key map: the user's keymap bindings followed by the fixed hotkeys
// the controller handles outside the keymap.
type helpKeys struct {
	actions []key.Binding
	hotkeys []key.Binding
}

var (
	keyHelp   = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	keyDetail = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "toggle detail"))
)

func fixedHotkeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "pick project")),
		key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "prev/next project")),
		key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "new project")),
		key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "edit due")),
		key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rename")),
		key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "edit tags")),
		key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("gg", "top")),
		keyDetail,
		keyHelp,
	}
}

func newHelpKeys(km keymap.Keymap) helpKeys {
	return helpKeys{actions: keymap.Bindings(km), hotkeys: fixedHotkeys()}
}

func (k helpKeys) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, 6)
	for _, b := range k.actions {
		if len(out) == 4 {
			break
		}
		out = append(out, b)
	}
	return append(out, keyDetail, keyHelp)
}

func (k helpKeys) FullHelp() [][]key.Binding {
	all := append(append([]key.Binding{}, k.actions...), k.hotkeys...)
	var cols [][]key.Binding
	for len(all) > 0 {
		n := min(len(all), 6)
		cols = append(cols, all[:n])
		all = all[n:]
	}
	return cols
}
