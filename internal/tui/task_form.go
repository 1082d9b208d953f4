package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/core/validate"
	"github.com/hay-kot/kanban/internal/tui/components/form"
)

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldStatus      = "status"
	fieldPriority    = "priority"
	fieldDue         = "due"
	fieldSubtasks    = "subtasks"
)

// TaskForm edits the fields of a new or existing task.
type TaskForm struct {
	dialog *form.Dialog
	taskID string // empty when creating
	base   task.Task
}

// NewCreateForm opens an empty form that creates a task in column status.
func NewCreateForm(status task.Status) *TaskForm {
	return newTaskForm("New Task", task.Task{Status: status, Priority: task.PriorityMedium})
}

// NewEditForm opens a form pre-filled with t.
func NewEditForm(t task.Task) *TaskForm {
	f := newTaskForm("Edit Task", t)
	f.taskID = t.ID
	return f
}

func newTaskForm(title string, t task.Task) *TaskForm {
	name := form.NewTextField("Title", task.DefaultTitle, t.Title)
	name.Validation = form.FieldValidation{MaxLength: validate.MaxTitleLength}

	due := form.NewTextField("Due date", "YYYY-MM-DD", dueString(t.DueDate))
	due.Validation = form.FieldValidation{Check: checkDate}

	fields := []form.Field{
		name,
		form.NewTextAreaField("Description", "Markdown supported", t.Description, 4),
		form.NewChoiceField("Status", statusOptions(), string(t.Status)),
		form.NewChoiceField("Priority", priorityOptions(), string(t.Priority)),
		due,
		form.NewTextAreaField("Subtasks", "one per line, prefix [x] when done", formatSubtasks(t.Subtasks), 4),
	}
	keys := []string{fieldTitle, fieldDescription, fieldStatus, fieldPriority, fieldDue, fieldSubtasks}

	return &TaskForm{dialog: form.NewDialog(title, fields, keys), base: t}
}

func (f *TaskForm) Update(msg tea.Msg) (*TaskForm, tea.Cmd) {
	var cmd tea.Cmd
	f.dialog, cmd = f.dialog.Update(msg)
	return f, cmd
}

func (f *TaskForm) View() string { return f.dialog.View() }

func (f *TaskForm) Submitted() bool { return f.dialog.Submitted() }

func (f *TaskForm) Cancelled() bool { return f.dialog.Cancelled() }

// Editing reports whether the form edits an existing task.
func (f *TaskForm) Editing() bool { return f.taskID != "" }

func (f *TaskForm) TaskID() string { return f.taskID }

// Task builds the task described by the form. Fields the form does not show
// are carried over from the task it was opened with.
func (f *TaskForm) Task() task.Task {
	v := f.dialog.Values()

	t := f.base.Clone()
	t.Title = strings.TrimSpace(v[fieldTitle])
	t.Description = strings.TrimSpace(v[fieldDescription])
	t.Status = task.Status(v[fieldStatus])
	t.Priority = task.Priority(v[fieldPriority])
	t.DueDate = parseDue(v[fieldDue])
	t.Subtasks = parseSubtasks(v[fieldSubtasks])
	return t
}

// Patch returns only the fields that differ from the task the form was
// opened with.
func (f *TaskForm) Patch() task.Patch {
	next := f.Task()
	prev := f.base
	var p task.Patch

	if next.Title != prev.Title {
		p.Title = &next.Title
	}
	if next.Description != prev.Description {
		p.Description = &next.Description
	}
	if next.Status != prev.Status {
		p.Status = &next.Status
	}
	if next.Priority != prev.Priority {
		p.Priority = &next.Priority
	}
	if dueString(next.DueDate) != dueString(prev.DueDate) {
		if next.DueDate == nil {
			p.ClearDueDate = true
		} else {
			p.DueDate = next.DueDate
		}
	}
	if !slices.Equal(next.Subtasks, prev.Subtasks) {
		p.Subtasks = &next.Subtasks
	}
	return p
}

func statusOptions() []string {
	out := make([]string, len(task.Statuses))
	for i, s := range task.Statuses {
		out[i] = string(s)
	}
	return out
}

func priorityOptions() []string {
	out := make([]string, len(task.Priorities))
	for i, p := range task.Priorities {
		out[i] = string(p)
	}
	return out
}

func checkDate(s string) string {
	if err := validate.DueDate(s); err != nil {
		return err.Error()
	}
	return ""
}

func dueString(d *task.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func parseDue(s string) *task.Date {
	d, err := task.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &d
}

const doneMarker = "[x] "

func formatSubtasks(subs []task.Subtask) string {
	lines := make([]string, len(subs))
	for i, s := range subs {
		if s.Completed {
			lines[i] = doneMarker + s.Text
		} else {
			lines[i] = s.Text
		}
	}
	return strings.Join(lines, "\n")
}

func parseSubtasks(s string) []task.Subtask {
	var out []task.Subtask
	for line := range strings.SplitSeq(s, "\n") {
		line = strings.TrimSpace(line)
		done := false
		switch {
		case strings.HasPrefix(strings.ToLower(line), doneMarker):
			line, done = strings.TrimSpace(line[len(doneMarker):]), true
		case strings.HasPrefix(line, "[ ] "):
			line = strings.TrimSpace(line[len("[ ] "):])
		}
		if line == "" {
			continue
		}
		out = append(out, task.Subtask{Text: line, Completed: done})
	}
	return out
}
