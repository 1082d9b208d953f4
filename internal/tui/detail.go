package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/kanban/internal/core/styles"
	"github.com/hay-kot/kanban/internal/core/task"
)

const (
	detailMaxWidth  = 90
	detailMargin    = 4
	detailChrome    = 8 // border, padding, title, help
	detailMinHeight = 6
)

// DetailView shows one task with its rendered description.
type DetailView struct {
	task     task.Task
	viewport viewport.Model
	width    int
	now      func() time.Time
}

// NewDetailView creates a detail view sized for a width x height screen.
func NewDetailView(t task.Task, width, height int, now func() time.Time) *DetailView {
	d := &DetailView{task: t, now: now}
	d.SetSize(width, height)
	return d
}

// TaskID returns the id of the shown task.
func (d *DetailView) TaskID() string { return d.task.ID }

// Task returns the shown task.
func (d *DetailView) Task() task.Task { return d.task }

// SetTask replaces the shown task, keeping the scroll position.
func (d *DetailView) SetTask(t task.Task) {
	d.task = t
	offset := d.viewport.YOffset
	d.refresh()
	d.viewport.SetYOffset(offset)
}

// SetSize fits the view to the screen.
func (d *DetailView) SetSize(width, height int) {
	d.width = min(width-detailMargin, detailMaxWidth)
	h := max(height-detailMargin-detailChrome, detailMinHeight)
	d.viewport = viewport.New(d.width-detailChrome, h)
	d.refresh()
}

func (d *DetailView) Update(msg tea.Msg) (*DetailView, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d *DetailView) refresh() {
	d.viewport.SetContent(d.render(d.viewport.Width))
}

func (d *DetailView) render(width int) string {
	t := d.task
	var b strings.Builder

	meta := []string{
		lipgloss.NewStyle().Foreground(styles.StatusColor(t.Status)).Render(t.Status.Label()),
		styles.PriorityStyle(t.Priority).Render(string(t.Priority) + " priority"),
	}
	if t.DueDate != nil {
		due := styles.IconCalendar + " due " + t.DueDate.String()
		if t.Overdue(d.now()) {
			meta = append(meta, styles.OverdueStyle.Render(due+" (overdue)"))
		} else {
			meta = append(meta, styles.TextMutedStyle.Render(due))
		}
	}
	if t.Pinned {
		meta = append(meta, styles.TextPrimaryBoldStyle.Render(styles.IconPin+" pinned"))
	}
	b.WriteString(strings.Join(meta, "  "))
	b.WriteString("\n")
	b.WriteString(styles.TextMutedStyle.Render(fmt.Sprintf("created %s • updated %s",
		humanize.RelTime(t.CreatedAt, d.now(), "ago", "from now"),
		humanize.RelTime(t.UpdatedAt, d.now(), "ago", "from now"))))
	b.WriteString("\n\n")

	if strings.TrimSpace(t.Description) == "" {
		b.WriteString(styles.TextMutedStyle.Render("No description"))
		b.WriteString("\n")
	} else {
		b.WriteString(renderMarkdown(t.Description, width))
	}

	if len(t.Subtasks) > 0 {
		done, total := t.SubtaskProgress()
		b.WriteString("\n")
		b.WriteString(styles.TextForegroundBoldStyle.Render(fmt.Sprintf("%s Subtasks %d/%d", styles.IconCheckList, done, total)))
		b.WriteString("\n")
		for i, s := range t.Subtasks {
			box, style := styles.IconUnchecked, styles.TextForegroundStyle
			if s.Completed {
				box, style = styles.IconChecked, styles.TextMutedStyle.Strikethrough(true)
			}
			num := " "
			if i < 9 {
				num = fmt.Sprint(i + 1)
			}
			b.WriteString(fmt.Sprintf("%s %s %s\n", styles.TextMutedStyle.Render(num), box, style.Render(s.Text)))
		}
	}

	if len(t.Files) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.TextForegroundBoldStyle.Render(fmt.Sprintf("%s Files (%d)", styles.IconPaperclip, len(t.Files))))
		b.WriteString("\n")
		for _, f := range t.Files {
			b.WriteString(fmt.Sprintf("  %s %s\n", f.Name, styles.TextMutedStyle.Render(humanize.Bytes(uint64(max(f.Size, 0))))))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderMarkdown(src string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		log.Debug().Err(err).Msg("markdown renderer unavailable")
		return src + "\n"
	}
	out, err := r.Render(src)
	if err != nil {
		log.Debug().Err(err).Msg("markdown render failed")
		return src + "\n"
	}
	return strings.Trim(out, "\n") + "\n"
}

// View renders the modal body.
func (d *DetailView) View() string {
	title := d.task.Title
	if d.viewport.TotalLineCount() > d.viewport.VisibleLineCount() {
		title += styles.TextMutedStyle.Render(fmt.Sprintf(" (%.0f%%)", d.viewport.ScrollPercent()*100))
	}

	help := "[j/k] scroll  [e] edit  [p] pin  [esc] close"
	if len(d.task.Subtasks) > 0 {
		help = "[1-9] toggle subtask  " + help
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(title),
		"",
		d.viewport.View(),
		styles.ModalHelpStyle.Render(help),
	)
	return styles.ModalStyle.Width(d.width).Render(content)
}
