package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const resetStyle = "\x1b[0m"

// placeOverlay draws fg over bg with the top-left corner of fg at (x, y).
// Rows of fg that fall outside bg are dropped.
func placeOverlay(x, y int, fg, bg string) string {
	x = max(x, 0)
	bgLines := strings.Split(bg, "\n")
	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}

		base := bgLines[row]
		if w := ansi.StringWidth(base); w < x {
			base += strings.Repeat(" ", x-w)
		}

		left := ansi.Truncate(base, x, "")
		right := ansi.TruncateLeft(base, x+ansi.StringWidth(line), "")
		bgLines[row] = left + resetStyle + line + resetStyle + right
	}
	return strings.Join(bgLines, "\n")
}

// centerOverlay draws fg centred in a width x height background.
func centerOverlay(fg, bg string, width, height int) string {
	x := (width - lipgloss.Width(fg)) / 2
	y := (height - lipgloss.Height(fg)) / 2
	return placeOverlay(x, y, fg, bg)
}
