package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/kanban/internal/core/notify"
	"github.com/hay-kot/kanban/internal/core/styles"
)

const (
	notifyModalWidthPct  = 65
	notifyModalMinWidth  = 50
	notifyModalMaxHeight = 30
	notifyModalMargin    = 4
	notifyModalChrome    = 8 // border, padding, title, divider, help
)

// NotificationModal displays a scrollable history of notifications.
type NotificationModal struct {
	bus      *notify.Bus
	viewport viewport.Model
	width    int
}

// NewNotificationModal creates a modal showing the history kept by bus.
func NewNotificationModal(bus *notify.Bus, width, height int) *NotificationModal {
	modalWidth := calcNotificationModalWidth(width)
	modalHeight := min(height-notifyModalMargin, notifyModalMaxHeight)
	contentHeight := max(modalHeight-notifyModalChrome, 1)

	m := &NotificationModal{
		bus:      bus,
		viewport: viewport.New(modalWidth-6, contentHeight),
		width:    modalWidth,
	}
	m.refreshContent()
	return m
}

func (m *NotificationModal) refreshContent() {
	history := m.bus.History()
	if len(history) == 0 {
		m.viewport.SetContent(styles.TextMutedStyle.Render("No notifications"))
		return
	}

	lines := make([]string, len(history))
	for i, n := range history {
		lines[i] = formatNotification(n)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func formatNotification(n notify.Notification) string {
	ts := styles.TextMutedStyle.Render(n.CreatedAt.Format("15:04:05"))

	var icon string
	var msgStyle lipgloss.Style
	switch n.Level {
	case notify.LevelError:
		icon, msgStyle = styles.IconNotifyError, styles.TextErrorStyle
	case notify.LevelWarning:
		icon, msgStyle = styles.IconNotifyWarning, styles.TextWarningStyle
	case notify.LevelSuccess:
		icon, msgStyle = styles.IconNotifySuccess, styles.TextSuccessStyle
	default:
		icon, msgStyle = styles.IconNotifyInfo, styles.TextForegroundStyle
	}

	return fmt.Sprintf("%s %s %s", ts, icon, msgStyle.Render(n.Message))
}

// ScrollUp scrolls the viewport up.
func (m *NotificationModal) ScrollUp() {
	m.viewport.ScrollUp(1)
}

// ScrollDown scrolls the viewport down.
func (m *NotificationModal) ScrollDown() {
	m.viewport.ScrollDown(1)
}

// Clear forgets the history and refreshes the view.
func (m *NotificationModal) Clear() {
	m.bus.Clear()
	m.refreshContent()
}

// View renders the modal body.
func (m *NotificationModal) View() string {
	scrollInfo := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scrollInfo = styles.TextMutedStyle.Render(
			fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100),
		)
	}

	divider := styles.DividerStyle.Render(strings.Repeat("─", max(m.width-6, 1)))
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render("Notifications"+scrollInfo),
		divider,
		m.viewport.View(),
		styles.ModalHelpStyle.Render("[j/k] scroll  [D] clear all  [esc] close"),
	)

	return styles.ModalStyle.Width(m.width).Render(content)
}

func calcNotificationModalWidth(termWidth int) int {
	available := max(termWidth-notifyModalMargin, 1)
	target := termWidth * notifyModalWidthPct / 100
	return min(max(target, notifyModalMinWidth), available)
}
