package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_Publish_dispatches_to_subscribers(t *testing.T) {
	bus := NewBus()

	var received []Notification
	bus.Subscribe(func(n Notification) {
		received = append(received, n)
	})

	bus.Errorf("test error: %d", 42)
	bus.Infof("info msg")
	bus.Warnf("warn msg")
	bus.Successf("ok")

	require.Len(t, received, 4)
	assert.Equal(t, LevelError, received[0].Level)
	assert.Equal(t, "test error: 42", received[0].Message)
	assert.Equal(t, LevelInfo, received[1].Level)
	assert.Equal(t, LevelWarning, received[2].Level)
	assert.Equal(t, LevelSuccess, received[3].Level)
}

func TestBus_History_returns_newest_first(t *testing.T) {
	bus := NewBus()

	bus.Infof("first")
	bus.Infof("second")
	bus.Infof("third")

	history := bus.History()
	require.Len(t, history, 3)
	assert.Equal(t, "third", history[0].Message)
	assert.Equal(t, "first", history[2].Message)
}

func TestBus_History_is_bounded(t *testing.T) {
	bus := NewBus()
	for i := range historyLimit + 10 {
		bus.Infof("n%d", i)
	}

	history := bus.History()
	require.Len(t, history, historyLimit)
	assert.Equal(t, fmt.Sprintf("n%d", historyLimit+9), history[0].Message)
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()
	bus.Infof("to be cleared")
	bus.Clear()
	assert.Empty(t, bus.History())
}

func TestBus_Publish_sets_created_at(t *testing.T) {
	bus := NewBus()

	var received Notification
	bus.Subscribe(func(n Notification) { received = n })

	bus.Infof("timestamp check")
	assert.False(t, received.CreatedAt.IsZero())
}

func TestUndo_carries_action(t *testing.T) {
	n := Undo("Deleted \"x\"", 7)
	require.NotNil(t, n.Action)
	assert.Equal(t, ActionUndo, n.Action.Kind)
	assert.Equal(t, uint64(7), n.Action.EntryID)
	assert.Equal(t, "Undo", n.Action.Label)
}
