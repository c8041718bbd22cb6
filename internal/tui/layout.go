package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to exactly width columns (ANSI-aware) and height lines so panes line up
// under lipgloss.JoinHorizontal.
func normalizePane(s string, width, height int) string {
	width = max(width, 0)
	height = max(height, 0)

	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	for i, ln := range lines {
		lines[i] = fitLine(ln, width)
	}
	return strings.Join(lines, "\n")
}

// fitLine truncates ln with an ellipsis or pads it with spaces to width columns.
func fitLine(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	// Bound the cost of width computations on huge lines.
	if len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width+1)
	}
	if xansi.StringWidth(ln) > width {
		ln = xansi.Truncate(ln, width, "…")
	}
	if w := xansi.StringWidth(ln); w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// scrollWindow returns the first row to draw so that selected is visible in a window of height
// rows over n items.
func scrollWindow(selected, n, height int) int {
	if height <= 0 || n <= height {
		return 0
	}
	start := selected - height/2
	start = min(start, n-height)
	return max(start, 0)
}
