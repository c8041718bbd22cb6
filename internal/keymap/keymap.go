// Package keymap resolves normalized key tokens to semantic actions. Built-in defaults are the
// base; a user config file can add or override bindings.
package keymap

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Keymap holds the bindings used while browsing.
type Keymap struct {
	Normal map[string]Action
}

// Default returns a fresh copy of the built-in bindings.
func Default() Keymap {
	return Keymap{Normal: map[string]Action{
		"j":      MoveDown,
		"Down":   MoveDown,
		"k":      MoveUp,
		"Up":     MoveUp,
		"Ctrl-d": HalfPageDown,
		"Ctrl-u": HalfPageUp,
		"G":      GoBottom,
		"End":    GoBottom,
		"Home":   GoTop,
		"/":      FocusFilter,
		"q":      Quit,
		"x":      StatusNext,
		"X":      StatusPrev,
		"1":      SetTodo,
		"2":      SetDoing,
		"3":      SetDone,
	}}
}

func (k Keymap) Lookup(token string) (Action, bool) {
	a, ok := k.Normal[token]
	return a, ok
}

// Bind adds or replaces a binding.
func (k *Keymap) Bind(token string, a Action) {
	if k.Normal == nil {
		k.Normal = map[string]Action{}
	}
	k.Normal[token] = a
}

// Tokens returns the tokens bound to a, sorted.
func (k Keymap) Tokens(a Action) []string {
	var out []string
	for tok, bound := range k.Normal {
		if bound == a {
			out = append(out, tok)
		}
	}
	sort.Strings(out)
	return out
}

// Bindings renders the keymap as bubbles key bindings, one per bound action, for the help view.
func Bindings(k Keymap) []key.Binding {
	var out []key.Binding
	for _, a := range Actions() {
		toks := k.Tokens(a)
		if len(toks) == 0 {
			continue
		}
		out = append(out, key.NewBinding(
			key.WithKeys(toks...),
			key.WithHelp(strings.Join(toks, "/"), a.Help()),
		))
	}
	return out
}
