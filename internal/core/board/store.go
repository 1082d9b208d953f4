// Package board owns the authoritative in-memory task list and the transient
// view criteria for one board session.
package board

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/hay-kot/kanban/internal/core/task"
)

// ErrDuplicateID is returned when adding a task whose id is already present.
var ErrDuplicateID = errors.New("duplicate task id")

// Deleted is the snapshot held by the single-slot last-deleted register.
type Deleted struct {
	Task      task.Task
	DeletedAt time.Time
}

// Store holds the board's tasks. It is not safe for concurrent use; every
// mutation is expected to come from the single UI event loop.
type Store struct {
	tasks       []task.Task
	lastDeleted *Deleted
	lastID      int64
	now         func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// NewStoreWithClock creates an empty store that reads time from now.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// NewID returns a timestamp id that is strictly greater than any id this
// store generated before.
func (s *Store) NewID() string {
	n := s.now().UnixNano()
	if n <= s.lastID {
		n = s.lastID + 1
	}
	s.lastID = n
	return strconv.FormatInt(n, 10)
}

// Add inserts t, assigning an id when t has none and stamping CreatedAt and
// UpdatedAt. The stored copy is returned.
func (s *Store) Add(t task.Task) (task.Task, error) {
	t = t.Clone()
	if t.ID == "" {
		t.ID = s.NewID()
	} else if s.index(t.ID) >= 0 {
		return task.Task{}, fmt.Errorf("add %q: %w", t.ID, ErrDuplicateID)
	}

	now := s.now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	t.Normalize()

	s.tasks = append(s.tasks, t)
	return t.Clone(), nil
}

// Update merges p into the task with the given id and bumps UpdatedAt.
// Returns task.ErrNotFound when the id is unknown; callers treat that as a no-op.
func (s *Store) Update(id string, p task.Patch) (task.Task, error) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, task.ErrNotFound
	}

	t := &s.tasks[i]
	t.Apply(p)
	t.UpdatedAt = s.stamp(t.UpdatedAt)

	return t.Clone(), nil
}

// Remove excises the task after snapshotting it into the last-deleted
// register, replacing whatever the register held before.
func (s *Store) Remove(id string) (task.Task, error) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, task.ErrNotFound
	}

	removed := s.tasks[i]
	s.lastDeleted = &Deleted{Task: removed.Clone(), DeletedAt: s.now()}
	s.tasks = slices.Delete(s.tasks, i, i+1)

	return removed, nil
}

// Find returns a copy of the task with the given id.
func (s *Store) Find(id string) (task.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// ReplaceAll swaps the whole task list. It is used by the startup load so a
// reload never accumulates duplicates. Later duplicates of an id are dropped.
func (s *Store) ReplaceAll(tasks []task.Task) {
	next := make([]task.Task, 0, len(tasks))
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = s.NewID()
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		t = t.Clone()
		t.Normalize()
		next = append(next, t)
	}
	s.tasks = next
}

// Clear removes every task and returns them in store order.
func (s *Store) Clear() []task.Task {
	removed := s.tasks
	s.tasks = nil
	return removed
}

// Restore puts a snapshot back. A task already present with the same id is
// overwritten in place. The last-deleted register is emptied when it held t.
func (s *Store) Restore(t task.Task) task.Task {
	t = t.Clone()
	t.Normalize()
	if i := s.index(t.ID); i >= 0 {
		s.tasks[i] = t
	} else {
		s.tasks = append(s.tasks, t)
	}
	if s.lastDeleted != nil && s.lastDeleted.Task.ID == t.ID {
		s.lastDeleted = nil
	}
	return t.Clone()
}

// RestoreAll restores each snapshot in order.
func (s *Store) RestoreAll(tasks []task.Task) {
	for _, t := range tasks {
		s.Restore(t)
	}
}

// LastDeleted returns the most recent delete snapshot, if any.
func (s *Store) LastDeleted() (Deleted, bool) {
	if s.lastDeleted == nil {
		return Deleted{}, false
	}
	d := *s.lastDeleted
	d.Task = d.Task.Clone()
	return d, true
}

// All returns a copy of the tasks in store order.
func (s *Store) All() []task.Task {
	out := make([]task.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t task.Task) bool { return t.ID == id })
}

// stamp returns the current time, never earlier than prev.
func (s *Store) stamp(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}
