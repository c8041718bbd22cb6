package tui

import (
	"strings"

	"tm-cli/internal/session"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// inputPrompt is the prefix shown before the buffer in each text-entry mode.
func inputPrompt(st *session.State) (prompt, text string, ok bool) {
	switch st.Mode {
	case session.ModeExCommand:
		return ":", st.Buffer, true
	case session.ModeFiltering:
		return "/", st.Filter, true
	case session.ModeEditingField:
		return st.Field.String() + ": ", st.Buffer, true
	case session.ModeNewProject:
		return "new project: ", st.Buffer, true
	}
	return "", "", false
}

func renderInputLine(width int, prompt, text string) string {
	width = max(width, 10)

	// Keep the entry on one visual line.
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")

	cursor := lipgloss.NewStyle().Background(colorAccent).Foreground(colorAccentFg).Render(" ")
	line := lipgloss.PlaceHorizontal(
		width,
		lipgloss.Left,
		" "+prompt+text+cursor,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > width {
		// Show the tail so the cursor stays visible; reset styling to prevent bleed.
		w := xansi.StringWidth(line)
		line = xansi.Cut(line, w-width, w) + "\x1b[0m"
	}
	return line
}
