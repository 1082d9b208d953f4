package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/kanban/internal/core/styles"
)

// ConfirmModal is a yes/no confirmation dialog. Left/right or tab moves the
// selection; y and n answer directly.
type ConfirmModal struct {
	title           string
	message         string
	confirmSelected bool
	confirmed       bool
	cancelled       bool
}

// NewConfirmModal creates a new confirmation modal with confirm selected.
func NewConfirmModal(title, message string) ConfirmModal {
	return ConfirmModal{
		title:           title,
		message:         message,
		confirmSelected: true,
	}
}

// Update handles input for the confirmation modal.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.confirmed = true
	case "n", "N", "esc":
		m.cancelled = true
	case "enter":
		if m.confirmSelected {
			m.confirmed = true
		} else {
			m.cancelled = true
		}
	case "left", "right", "h", "l", "tab", "shift+tab":
		m.confirmSelected = !m.confirmSelected
	}

	return m, nil
}

// View renders the confirmation modal.
func (m ConfirmModal) View() string {
	confirmBtn, cancelBtn := styles.ModalButtonStyle, styles.ModalButtonStyle
	if m.confirmSelected {
		confirmBtn = styles.ModalButtonSelectedStyle
	} else {
		cancelBtn = styles.ModalButtonSelectedStyle
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		confirmBtn.Render("Confirm"), "  ", cancelBtn.Render("Cancel"))

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		styles.TextForegroundStyle.Render(m.message),
		lipgloss.NewStyle().MarginTop(1).Render(buttons),
		styles.ModalHelpStyle.Render("y/n answer • ←/→ select • enter choose"),
	)
	return styles.ModalStyle.Render(content)
}

// Confirmed returns true if user confirmed.
func (m ConfirmModal) Confirmed() bool {
	return m.confirmed
}

// Cancelled returns true if user cancelled.
func (m ConfirmModal) Cancelled() bool {
	return m.cancelled
}
