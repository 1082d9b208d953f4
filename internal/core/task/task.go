// Package task defines the Kanban task domain model.
package task

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("task not found")

// DefaultTitle replaces an empty title on create or edit.
const DefaultTitle = "Untitled Task"

// Status is the workflow column a task belongs to.
type Status string

const (
	StatusTodo     Status = "todo"
	StatusProgress Status = "progress"
	StatusDone     Status = "done"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusTodo, StatusProgress, StatusDone}

// IsValid reports whether s is one of the three board columns.
func (s Status) IsValid() bool {
	return slices.Contains(Statuses, s)
}

// Label returns the column heading for s.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	return st, st.IsValid()
}

// Priority ranks a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	return slices.Contains(Priorities, p)
}

// ParsePriority matches s case-insensitively against the known priorities.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// Subtask is a checklist entry. It has no identity beyond its position.
type Subtask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Attachment is file metadata only; content is never stored by the board.
type Attachment struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	LastModified int64  `json:"lastModified"`
	URL          string `json:"url"`
}

// Task is a single card on the board.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      Status       `json:"status"`
	Priority    Priority     `json:"priority"`
	DueDate     *Date        `json:"dueDate"`
	Pinned      bool         `json:"pinned"`
	Subtasks    []Subtask    `json:"subtasks,omitempty"`
	Files       []Attachment `json:"files,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Normalize applies the defaults for missing or invalid fields: an empty title
// becomes DefaultTitle, an unknown status becomes todo and an unknown priority
// becomes medium. Empty slices are collapsed to nil.
func (t *Task) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		t.Title = DefaultTitle
	}
	if st, ok := ParseStatus(string(t.Status)); ok {
		t.Status = st
	} else {
		t.Status = StatusTodo
	}
	if p, ok := ParsePriority(string(t.Priority)); ok {
		t.Priority = p
	} else {
		t.Priority = PriorityMedium
	}
	if len(t.Subtasks) == 0 {
		t.Subtasks = nil
	}
	if len(t.Files) == 0 {
		t.Files = nil
	}
}

// Clone returns a deep copy of t.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	c.Subtasks = slices.Clone(t.Subtasks)
	c.Files = slices.Clone(t.Files)
	return c
}

// SubtaskProgress returns the number of completed subtasks and the total.
func (t Task) SubtaskProgress() (done, total int) {
	for _, s := range t.Subtasks {
		if s.Completed {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// Overdue reports whether the task has a due date before today and is not done.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	return t.DueDate.Before(DateOf(now))
}

// Matches reports whether query is a case-insensitive substring of the title
// or the description. An empty query matches everything.
func (t Task) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}
