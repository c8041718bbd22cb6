package keymap

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// Named identifies a non-character key.
type Named int

const (
	NoName Named = iota
	NameUp
	NameDown
	NameLeft
	NameRight
	NameEnd
	NameHome
	NameEsc
	NameEnter
	NameTab
	NameBackspace
	NamePgUp
	NamePgDown
)

var namedTokens = map[Named]string{
	NameUp:        "Up",
	NameDown:      "Down",
	NameLeft:      "Left",
	NameRight:     "Right",
	NameEnd:       "End",
	NameHome:      "Home",
	NameEsc:       "Esc",
	NameEnter:     "Enter",
	NameTab:       "Tab",
	NameBackspace: "Backspace",
	NamePgUp:      "PgUp",
	NamePgDown:    "PgDown",
}

// Key is a front-end neutral key event. Exactly one of Rune or Named is set.
type Key struct {
	Rune  rune
	Named Named
	Ctrl  bool
	Shift bool
}

// Char is a plain printable key.
func Char(r rune) Key { return Key{Rune: r} }

// Ctrl is a control chord on r.
func Ctrl(r rune) Key { return Key{Rune: r, Ctrl: true} }

// Special is a named key without modifiers.
func Special(n Named) Key { return Key{Named: n} }

// Printable reports whether k should be appended to a text buffer.
func (k Key) Printable() bool {
	return k.Named == NoName && k.Rune != 0 && !k.Ctrl && unicode.IsPrint(k.Rune)
}

// Token normalizes k for keymap lookup:
//
//	plain char    -> itself        ("j", "G", "/")
//	control chord -> "Ctrl-<lower>" ("Ctrl-d")
//	shift+letter  -> uppercase     ("G")
//	named key     -> fixed name    ("Down", "End", "Esc")
//
// Every front-end must produce the same token for the same physical key.
func Token(k Key) string {
	if k.Named != NoName {
		return namedTokens[k.Named]
	}
	if k.Rune == 0 {
		return ""
	}
	switch {
	case k.Ctrl:
		return "Ctrl-" + strings.ToLower(string(k.Rune))
	case k.Shift && unicode.IsLetter(k.Rune):
		return strings.ToUpper(string(k.Rune))
	default:
		return string(k.Rune)
	}
}

// KeyFromMsg converts a bubbletea key event. ok is false for keys with no token (function keys,
// pastes, multi-rune input).
func KeyFromMsg(msg tea.KeyMsg) (Key, bool) {
	if msg.Paste {
		return Key{}, false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return Key{}, false
		}
		return Char(msg.Runes[0]), true
	case tea.KeySpace:
		return Char(' '), true
	case tea.KeyUp:
		return Special(NameUp), true
	case tea.KeyDown:
		return Special(NameDown), true
	case tea.KeyLeft:
		return Special(NameLeft), true
	case tea.KeyRight:
		return Special(NameRight), true
	case tea.KeyEnd:
		return Special(NameEnd), true
	case tea.KeyHome:
		return Special(NameHome), true
	case tea.KeyPgUp:
		return Special(NamePgUp), true
	case tea.KeyPgDown:
		return Special(NamePgDown), true
	// Esc, Enter, Tab and Backspace share values with ctrl chords, so they are matched first.
	case tea.KeyEsc:
		return Special(NameEsc), true
	case tea.KeyEnter:
		return Special(NameEnter), true
	case tea.KeyTab:
		return Special(NameTab), true
	case tea.KeyBackspace:
		return Special(NameBackspace), true
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return Ctrl(rune('a' + int(msg.Type-tea.KeyCtrlA))), true
	}
	return Key{}, false
}

// TokenFromKeyMsg is Token(KeyFromMsg(msg)).
func TokenFromKeyMsg(msg tea.KeyMsg) (string, bool) {
	k, ok := KeyFromMsg(msg)
	if !ok {
		return "", false
	}
	return Token(k), true
}
