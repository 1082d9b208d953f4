package board

import (
	"time"

	"github.com/hay-kot/kanban/internal/core/view"
)

// State is the per-session board: the task store plus the transient view
// criteria. One State is created at startup and passed to every component
// that needs it.
type State struct {
	Tasks    *Store
	Criteria view.Criteria
}

// NewState creates an empty board with default criteria.
func NewState() *State {
	return &State{
		Tasks:    NewStore(),
		Criteria: view.DefaultCriteria(),
	}
}

// NewStateWithClock is NewState with an injectable clock.
func NewStateWithClock(now func() time.Time) *State {
	return &State{
		Tasks:    NewStoreWithClock(now),
		Criteria: view.DefaultCriteria(),
	}
}

// Columns projects the current tasks through the current criteria.
func (s *State) Columns() view.Columns {
	return view.Project(s.Tasks.All(), s.Criteria)
}

// SetQuery updates the search query.
func (s *State) SetQuery(q string) {
	s.Criteria.Query = q
}

// SetPriorityFilter updates the priority filter; empty resets it to all.
func (s *State) SetPriorityFilter(p string) {
	if p == "" {
		p = view.PriorityAll
	}
	s.Criteria.Priority = p
}

// CycleSort advances the sort order and returns the new value.
func (s *State) CycleSort() view.SortOrder {
	s.Criteria.Sort = s.Criteria.Sort.Next()
	return s.Criteria.Sort
}
