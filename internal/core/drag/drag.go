// Package drag interprets a pointer drag of a card into a column change.
//
// The controller is a two-state machine (Idle, Dragging). It never touches the
// task store: Drop reports what happened and the caller applies the status
// change. Position inside a column is only a visual hint and is not persisted.
package drag

import "github.com/hay-kot/kanban/internal/core/task"

// Phase is the controller state.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "idle"
}

// Slot is the on-screen extent of a card in a drop target list.
type Slot struct {
	ID     string
	Top    int
	Height int
}

// Mid returns the vertical midpoint of the slot.
func (s Slot) Mid() float64 {
	return float64(s.Top) + float64(s.Height)/2
}

// Target is the column and insertion index currently under the pointer.
type Target struct {
	Status task.Status
	Index  int
}

// Result describes a completed drop.
type Result struct {
	TaskID string
	From   task.Status
	To     task.Status
	Index  int
}

// StatusChanged reports whether the drop moved the task to another column.
func (r Result) StatusChanged() bool {
	return r.From != r.To
}

// Controller tracks a single drag gesture.
type Controller struct {
	phase  Phase
	taskID string
	from   task.Status
	target *Target
}

// NewController returns an idle controller.
func NewController() *Controller {
	return &Controller{}
}

// Begin starts dragging the task with the given id out of column from. A drag
// already in progress is abandoned.
func (c *Controller) Begin(id string, from task.Status) {
	c.phase = Dragging
	c.taskID = id
	c.from = from
	c.target = nil
}

// Over records that the pointer is over the given column at pointerY and
// returns the insertion index among slots. The dragged card itself is ignored.
// It does nothing while idle and returns -1.
func (c *Controller) Over(col task.Status, pointerY int, slots []Slot) int {
	if c.phase != Dragging {
		return -1
	}
	idx := InsertionIndex(pointerY, slots, c.taskID)
	c.target = &Target{Status: col, Index: idx}
	return idx
}

// Leave records that the pointer is no longer over any drop target.
func (c *Controller) Leave() {
	c.target = nil
}

// Drop ends the gesture. ok is false when the pointer was not over a valid
// target, in which case the drop behaves like Cancel.
func (c *Controller) Drop() (Result, bool) {
	if c.phase != Dragging {
		return Result{}, false
	}
	defer c.reset()

	if c.target == nil {
		return Result{}, false
	}

	return Result{
		TaskID: c.taskID,
		From:   c.from,
		To:     c.target.Status,
		Index:  c.target.Index,
	}, true
}

// Cancel ends the gesture without a result.
func (c *Controller) Cancel() {
	c.reset()
}

// Phase returns the current state.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Dragging reports whether a gesture is in progress.
func (c *Controller) Dragging() bool {
	return c.phase == Dragging
}

// TaskID returns the in-flight task id, or "" when idle.
func (c *Controller) TaskID() string {
	return c.taskID
}

// Target returns the current drop target, if any.
func (c *Controller) Target() (Target, bool) {
	if c.target == nil {
		return Target{}, false
	}
	return *c.target, true
}

func (c *Controller) reset() {
	c.phase = Idle
	c.taskID = ""
	c.from = ""
	c.target = nil
}

// InsertionIndex returns where a card dropped at pointerY lands among slots,
// which must be ordered top to bottom. The card is inserted before the first
// slot whose midpoint lies below the pointer; when there is none it is
// appended. The slot with id skip (the dragged card) is not counted.
func InsertionIndex(pointerY int, slots []Slot, skip string) int {
	idx := 0
	for _, s := range slots {
		if s.ID == skip {
			continue
		}
		if float64(pointerY) < s.Mid() {
			return idx
		}
		idx++
	}
	return idx
}
