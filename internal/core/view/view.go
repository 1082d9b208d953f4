// Package view derives the per-column board projection from the task list.
//
// Project is a pure function: the same tasks and criteria always produce the
// same columns in the same order. Nothing here mutates its input.
package view

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hay-kot/kanban/internal/core/task"
)

// SortOrder selects the secondary due-date ordering inside a column.
type SortOrder string

const (
	SortNone SortOrder = "none"
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Next cycles none -> asc -> desc -> none.
func (o SortOrder) Next() SortOrder {
	switch o {
	case SortAsc:
		return SortDesc
	case SortDesc:
		return SortNone
	default:
		return SortAsc
	}
}

// ParseSortOrder accepts none, asc or desc (empty means none).
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "", SortNone:
		return SortNone, nil
	case SortAsc, SortDesc:
		return o, nil
	default:
		return SortNone, fmt.Errorf("invalid sort order %q: must be one of none, asc, desc", s)
	}
}

// PriorityAll disables priority filtering.
const PriorityAll = "all"

// Criteria are the transient view settings. They are never persisted.
type Criteria struct {
	Query    string
	Priority string // PriorityAll, empty, or a task.Priority
	Sort     SortOrder
}

// DefaultCriteria shows every task in store order.
func DefaultCriteria() Criteria {
	return Criteria{Priority: PriorityAll, Sort: SortNone}
}

func (c Criteria) keep(t task.Task) bool {
	if !t.Matches(c.Query) {
		return false
	}
	if c.Priority == "" || strings.EqualFold(c.Priority, PriorityAll) {
		return true
	}
	return strings.EqualFold(c.Priority, string(t.Priority))
}

// Columns maps each board column to its ordered, filtered tasks.
type Columns map[task.Status][]task.Task

// Project partitions tasks by status, filters them and orders each column:
// pinned tasks first, then by due date when a sort order is set. Missing due
// dates sort last for asc and first for desc. Remaining ties keep input order.
func Project(tasks []task.Task, c Criteria) Columns {
	cols := make(Columns, len(task.Statuses))
	for _, s := range task.Statuses {
		cols[s] = []task.Task{}
	}

	for _, t := range tasks {
		bucket, ok := cols[t.Status]
		if !ok {
			continue
		}
		if !c.keep(t) {
			continue
		}
		cols[t.Status] = append(bucket, t.Clone())
	}

	for s, bucket := range cols {
		slices.SortStableFunc(bucket, func(a, b task.Task) int {
			return compare(a, b, c.Sort)
		})
		cols[s] = bucket
	}

	return cols
}

func compare(a, b task.Task, order SortOrder) int {
	if a.Pinned != b.Pinned {
		if a.Pinned {
			return -1
		}
		return 1
	}

	switch order {
	case SortAsc:
		return compareDue(a.DueDate, b.DueDate, 1)
	case SortDesc:
		return compareDue(a.DueDate, b.DueDate, -1)
	default:
		return 0
	}
}

// compareDue orders by date in direction dir (1 asc, -1 desc). A missing date
// is infinitely late when ascending and infinitely early when descending.
func compareDue(a, b *task.Date, dir int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return dir
	case b == nil:
		return -dir
	default:
		return dir * a.Compare(*b)
	}
}

// IDs returns the task ids of a column in order.
func (c Columns) IDs(s task.Status) []string {
	ids := make([]string, 0, len(c[s]))
	for _, t := range c[s] {
		ids = append(ids, t.ID)
	}
	return ids
}

// Stats summarizes a projection for the board header.
type Stats struct {
	Counts  map[task.Status]int
	Total   int
	Overdue int
}

// Summarize counts the visible tasks per column and the overdue ones.
func (c Columns) Summarize(now time.Time) Stats {
	st := Stats{Counts: make(map[task.Status]int, len(task.Statuses))}
	for _, s := range task.Statuses {
		st.Counts[s] = len(c[s])
		st.Total += len(c[s])
		for _, t := range c[s] {
			if t.Overdue(now) {
				st.Overdue++
			}
		}
	}
	return st
}
