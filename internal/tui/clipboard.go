package tui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

var errClipboardUnsupported = errors.New("clipboard unavailable")

// systemClipboard copies task ids for the 'y' hotkey.
type systemClipboard struct{}

func (systemClipboard) WriteAll(s string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(strings.ReplaceAll(s, "\r\n", "\n"))
}
