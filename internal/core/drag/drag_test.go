package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/kanban/internal/core/task"
)

func slots(ids ...string) []Slot {
	out := make([]Slot, len(ids))
	for i, id := range ids {
		out[i] = Slot{ID: id, Top: i * 4, Height: 4}
	}
	return out
}

func TestInsertionIndex(t *testing.T) {
	// Midpoints: a=2, b=6, c=10
	list := slots("a", "b", "c")

	tests := []struct {
		name  string
		y     int
		slots []Slot
		skip  string
		want  int
	}{
		{"above first midpoint", 0, list, "", 0},
		{"exactly on midpoint goes after", 2, list, "", 1},
		{"between b and c", 7, list, "", 2},
		{"below everything appends", 30, list, "", 3},
		{"empty list appends", 5, nil, "", 0},
		{"dragged card is ignored", 7, list, "b", 1},
		{"dragged card at top is ignored", 0, list, "a", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InsertionIndex(tt.y, tt.slots, tt.skip))
		})
	}
}

func TestController_Lifecycle(t *testing.T) {
	c := NewController()
	assert.Equal(t, Idle, c.Phase())
	assert.Equal(t, -1, c.Over(task.StatusDone, 0, nil), "idle controller ignores movement")

	c.Begin("A", task.StatusTodo)
	assert.True(t, c.Dragging())
	assert.Equal(t, "A", c.TaskID())

	_, has := c.Target()
	assert.False(t, has)

	idx := c.Over(task.StatusProgress, 7, slots("x", "y"))
	assert.Equal(t, 2, idx)

	tgt, has := c.Target()
	require.True(t, has)
	assert.Equal(t, Target{Status: task.StatusProgress, Index: 2}, tgt)

	res, ok := c.Drop()
	require.True(t, ok)
	assert.Equal(t, Result{TaskID: "A", From: task.StatusTodo, To: task.StatusProgress, Index: 2}, res)
	assert.True(t, res.StatusChanged())
	assert.Equal(t, Idle, c.Phase())
	assert.Empty(t, c.TaskID())
}

func TestController_SameColumnDrop(t *testing.T) {
	c := NewController()
	c.Begin("A", task.StatusTodo)
	c.Over(task.StatusTodo, 0, slots("A", "B"))

	res, ok := c.Drop()
	require.True(t, ok)
	assert.False(t, res.StatusChanged())
	assert.Equal(t, 0, res.Index)
}

func TestController_DropOutsideTargetCancels(t *testing.T) {
	c := NewController()
	c.Begin("A", task.StatusTodo)
	c.Over(task.StatusDone, 0, nil)
	c.Leave()

	_, ok := c.Drop()
	assert.False(t, ok)
	assert.Equal(t, Idle, c.Phase())
}

func TestController_Cancel(t *testing.T) {
	c := NewController()
	c.Begin("A", task.StatusTodo)
	c.Over(task.StatusDone, 0, nil)
	c.Cancel()

	assert.False(t, c.Dragging())
	_, ok := c.Drop()
	assert.False(t, ok, "drop after cancel has no result")
}

func TestController_BeginRestarts(t *testing.T) {
	c := NewController()
	c.Begin("A", task.StatusTodo)
	c.Over(task.StatusDone, 0, nil)
	c.Begin("B", task.StatusProgress)

	_, has := c.Target()
	assert.False(t, has)
	assert.Equal(t, "B", c.TaskID())
}
