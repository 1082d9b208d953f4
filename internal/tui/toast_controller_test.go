package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/kanban/internal/core/notify"
)

func info(msg string) notify.Notification {
	return notify.Notification{Level: notify.LevelInfo, Message: msg}
}

func TestToastController_Push(t *testing.T) {
	c := NewToastController(0, 0)

	id := c.Push(info("hello"))

	assert.True(t, c.HasToasts())
	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, id, c.Toasts()[0].id)
	assert.Equal(t, "hello", c.Toasts()[0].notification.Message)
	assert.Equal(t, defaultToastTTL, c.Toasts()[0].remaining)
}

func TestToastController_Push_evicts_oldest_at_max(t *testing.T) {
	c := NewToastController(0, 3)

	for i := range 5 {
		c.Push(info(time.Duration(i).String()))
	}

	require.Len(t, c.Toasts(), 3)
	assert.Equal(t, "2ns", c.Toasts()[0].notification.Message)
}

func TestToastController_Tick_decrements_TTL(t *testing.T) {
	c := NewToastController(0, 0)
	c.Push(info("tick"))

	c.Tick(time.Second)

	assert.Equal(t, defaultToastTTL-time.Second, c.Toasts()[0].remaining)
}

func TestToastController_Tick_removes_expired(t *testing.T) {
	c := NewToastController(time.Second, 0)
	c.Push(info("expires"))
	c.Tick(500 * time.Millisecond)
	c.Push(info("survives"))

	c.Tick(500 * time.Millisecond)

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "survives", c.Toasts()[0].notification.Message)
}

func TestToastController_Pause_holds_countdown(t *testing.T) {
	c := NewToastController(time.Second, 0)
	c.Push(info("hover me"))

	c.Pause()
	c.Tick(10 * time.Second)
	require.True(t, c.HasToasts())
	assert.Equal(t, time.Second, c.Toasts()[0].remaining)

	c.Resume()
	c.Tick(time.Second)
	assert.False(t, c.HasToasts())
}

func TestToastController_Close(t *testing.T) {
	c := NewToastController(0, 0)
	first := c.Push(info("first"))
	c.Push(info("second"))
	c.Pause()

	assert.True(t, c.Close(first))
	assert.False(t, c.Close(first))

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "second", c.Toasts()[0].notification.Message)
	assert.True(t, c.Paused(), "closing one of several keeps the stack paused")

	c.Dismiss()
	assert.False(t, c.Paused(), "an empty stack resumes")
}

func TestToastController_CloseUndo(t *testing.T) {
	c := NewToastController(0, 0)
	c.Push(notify.Undo("Deleted a", 1))
	c.Push(info("unrelated"))
	c.Push(notify.Undo("Deleted b", 2))

	c.CloseUndo(1)

	require.Len(t, c.Toasts(), 2)
	assert.Equal(t, "unrelated", c.Toasts()[0].notification.Message)
	assert.Equal(t, "Deleted b", c.Toasts()[1].notification.Message)
}

func TestToastController_Get(t *testing.T) {
	c := NewToastController(0, 0)
	id := c.Push(info("find me"))

	n, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, "find me", n.Message)

	_, ok = c.Get(id + 1)
	assert.False(t, ok)
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController(0, 0)
	c.Push(info("first"))
	c.Push(info("second"))

	c.Dismiss()

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "first", c.Toasts()[0].notification.Message)
}

func TestToastController_Dismiss_empty(t *testing.T) {
	c := NewToastController(0, 0)
	c.Dismiss()
	assert.False(t, c.HasToasts())
}

func TestToastController_DismissAll(t *testing.T) {
	c := NewToastController(0, 0)
	c.Push(info("a"))
	c.Push(info("b"))

	c.DismissAll()

	assert.False(t, c.HasToasts())
	assert.Empty(t, c.Toasts())
}

func TestToastController_Ticking(t *testing.T) {
	c := NewToastController(0, 0)
	assert.False(t, c.Ticking())

	c.SetTicking(true)
	assert.True(t, c.Ticking())

	c.SetTicking(false)
	assert.False(t, c.Ticking())
}
