package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/kanban/internal/core/drag"
	"github.com/hay-kot/kanban/internal/core/styles"
	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/core/view"
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.size()
	cols := m.board.Columns()

	content := strings.Join([]string{
		m.renderHeader(cols, w),
		m.renderColumns(cols),
		m.renderFooter(w),
	}, "\n")

	if overlay := m.renderModal(); overlay != "" {
		content = centerOverlay(overlay, content, w, h)
	}

	if m.toasts.HasToasts() {
		content = m.toastView.Overlay(content, w, h-footerHeight)
	}

	return content
}

func (m Model) renderHeader(cols view.Columns, width int) string {
	stats := cols.Summarize(m.now())

	parts := []string{styles.HeaderTitleStyle.Render(styles.IconBoard + " Kanban")}
	for _, s := range task.Statuses {
		parts = append(parts, styles.HeaderStatStyle.Render(fmt.Sprintf("%s %d", s.Label(), stats.Counts[s])))
	}
	if stats.Overdue > 0 {
		parts = append(parts, " "+styles.OverdueStyle.Render(fmt.Sprintf("%d overdue", stats.Overdue)))
	}
	if m.loading {
		parts = append(parts, " "+m.spinner.View()+styles.TextMutedStyle.Render(" loading"))
	}
	top := ansi.Truncate(strings.Join(parts, ""), width, "…")

	var search string
	switch {
	case m.searching:
		search = styles.SearchStyle.Render(styles.IconSearch+" ") + m.search.View()
	case m.board.State().Criteria.Query != "":
		search = styles.SearchStyle.Render(styles.IconSearch + " " + m.board.State().Criteria.Query)
	default:
		search = styles.TextMutedStyle.Render(styles.IconSearch + " / to search")
	}

	crit := m.board.State().Criteria
	chips := strings.Join([]string{
		styles.FilterChipStyle.Render("sort: " + string(crit.Sort)),
		styles.FilterChipStyle.Render("priority: " + priorityLabel(crit.Priority)),
		styles.FilterChipStyle.Render("theme: " + m.theme.String()),
	}, " ")

	gap := width - lipgloss.Width(search) - lipgloss.Width(chips)
	bottom := search + strings.Repeat(" ", max(gap, 1)) + chips

	return top + "\n" + ansi.Truncate(bottom, width, "")
}

func priorityLabel(p string) string {
	if p == "" {
		return view.PriorityAll
	}
	return p
}

func (m Model) renderColumns(cols view.Columns) string {
	target, hasTarget := m.board.Drag().Target()
	dragID := m.board.Drag().TaskID()

	rendered := make([]string, len(task.Statuses))
	for i, s := range task.Statuses {
		isTarget := hasTarget && target.Status == s
		rendered[i] = m.renderColumn(i, cols[s], dragID, isTarget, target)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderColumn(i int, tasks []task.Task, dragID string, isTarget bool, target drag.Target) string {
	s := task.Statuses[i]
	style := styles.ColumnStyle
	switch {
	case isTarget:
		style = styles.ColumnDropTargetStyle
	case i == m.focusCol && m.topModal() == modalNone:
		style = styles.ColumnFocusedStyle
	}

	width := m.columnWidth(i)
	height := m.columnHeight()
	inner := width - style.GetHorizontalFrameSize()

	title := lipgloss.NewStyle().Foreground(styles.StatusColor(s)).Bold(true).
		Render(fmt.Sprintf("%s (%d)", s.Label(), len(tasks)))
	if isTarget && target.Status != "" {
		title += styles.DropIndicatorStyle.Render(" ↓ " + strconv.Itoa(target.Index+1))
	}
	lines := []string{ansi.Truncate(title, inner, "…")}

	start := m.offsets[i]
	end := min(start+m.visibleCards(), len(tasks))
	for j := start; j < end; j++ {
		t := tasks[j]
		cardStyle := styles.CardStyle
		switch {
		case t.ID == dragID:
			cardStyle = styles.CardDraggingStyle
		case i == m.focusCol && j == m.selected[i] && m.topModal() == modalNone:
			cardStyle = styles.CardSelectedStyle
		}
		lines = append(lines, m.renderCard(t, cardStyle, inner))
	}
	if len(tasks) == 0 {
		lines = append(lines, styles.TextMutedStyle.Render("empty"))
	}

	return style.
		Width(width - style.GetHorizontalBorderSize()).
		Height(height - style.GetVerticalBorderSize()).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderCard(t task.Task, style lipgloss.Style, width int) string {
	text := width - style.GetHorizontalFrameSize()

	title := t.Title
	if t.Pinned {
		title = styles.IconPin + " " + title
	}
	title = ansi.Truncate(title, text, "…")

	meta := []string{styles.PriorityStyle(t.Priority).Render(string(t.Priority))}
	if t.DueDate != nil {
		due := styles.IconCalendar + " " + t.DueDate.String()
		if t.Overdue(m.now()) {
			meta = append(meta, styles.OverdueStyle.Render(due))
		} else {
			meta = append(meta, styles.TextMutedStyle.Render(due))
		}
	}
	if done, total := t.SubtaskProgress(); total > 0 {
		meta = append(meta, styles.TextMutedStyle.Render(fmt.Sprintf("%s %d/%d", styles.IconCheckList, done, total)))
	}
	if n := len(t.Files); n > 0 {
		meta = append(meta, styles.TextMutedStyle.Render(fmt.Sprintf("%s %d", styles.IconPaperclip, n)))
	}
	metaLine := ansi.Truncate(strings.Join(meta, " "), text, "…")

	return style.Width(width - style.GetHorizontalBorderSize()).Render(title + "\n" + metaLine)
}

func (m Model) renderFooter(width int) string {
	hints := []string{"n new", "enter open", "H/L move", "d delete", "u undo", "/ search", "s sort", "? help", "q quit"}
	return ansi.Truncate(styles.TextMutedStyle.Render(strings.Join(hints, " • ")), width, "…")
}

func (m Model) renderModal() string {
	switch m.topModal() {
	case modalHelp:
		if m.help != nil {
			return m.help.View()
		}
	case modalForm:
		if m.form != nil {
			return styles.ModalStyle.Render(m.form.View())
		}
	case modalDetail:
		if m.detail != nil {
			return m.detail.View()
		}
	case modalConfirm:
		if m.confirm != nil {
			return m.confirm.View()
		}
	case modalNotifications:
		if m.notifications != nil {
			return m.notifications.View()
		}
	}
	return ""
}

func (m Model) now() time.Time {
	if m.clock != nil {
		return m.clock()
	}
	return time.Now()
}
