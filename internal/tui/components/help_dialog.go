// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/kanban/internal/core/styles"
)

// HelpEntry represents a single keyboard shortcut entry.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpDialogSection groups related help entries under a title.
type HelpDialogSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpDialog displays the keyboard shortcuts. Sections are laid out side by
// side when the terminal is wide enough.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
	width    int
}

// NewHelpDialog creates a new help dialog with the given sections.
func NewHelpDialog(title string, sections []HelpDialogSection, width int) *HelpDialog {
	return &HelpDialog{
		title:    title,
		sections: sections,
		width:    width,
	}
}

// SetWidth updates the available width.
func (h *HelpDialog) SetWidth(w int) {
	h.width = w
}

// View renders the help dialog.
func (h *HelpDialog) View() string {
	title := styles.TextForegroundBoldStyle.Render(h.title)

	blocks := make([]string, 0, len(h.sections))
	for _, section := range h.sections {
		blocks = append(blocks, renderSection(section))
	}

	var body string
	if h.width >= 4*(sectionWidth+2) {
		body = lipgloss.JoinHorizontal(lipgloss.Top, interleave(blocks, "  ")...)
	} else {
		body = strings.Join(blocks, "\n\n")
	}

	help := styles.HelpDialogHelpStyle.Render("esc/? close")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, help)

	return styles.HelpDialogModalStyle.Render(content)
}

const (
	keyWidth     = 10
	sectionWidth = 34
)

func renderSection(section HelpDialogSection) string {
	lines := make([]string, 0, len(section.Entries)+2)
	if section.Title != "" {
		lines = append(lines,
			styles.HelpDialogSectionStyle.Render(section.Title),
			styles.TextMutedStyle.Render(strings.Repeat("─", sectionWidth-2)),
		)
	}
	for _, entry := range section.Entries {
		lines = append(lines, formatKeyDesc(entry.Key, entry.Desc))
	}
	return lipgloss.NewStyle().Width(sectionWidth).Render(strings.Join(lines, "\n"))
}

// formatKeyDesc formats a key-description pair with consistent alignment.
func formatKeyDesc(key, desc string) string {
	paddedKey := key + Pad(keyWidth-lipgloss.Width(key))
	return styles.TextPrimaryBoldStyle.Render(paddedKey) + styles.TextForegroundStyle.Render(desc)
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}
