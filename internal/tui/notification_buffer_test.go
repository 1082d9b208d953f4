package tui

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/kanban/internal/core/notify"
)

var bufferEpoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return bufferEpoch }

func messages(ns []notify.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Message
	}
	return out
}

func TestNotificationBuffer_DrainEmpty(t *testing.T) {
	assert.Nil(t, NewNotificationBuffer().Drain())
}

func TestNotificationBuffer_OrderAndStamp(t *testing.T) {
	b := newNotificationBuffer(8, fixedNow)
	stamped := bufferEpoch.Add(-time.Hour)

	b.Push(notify.Notification{Level: notify.LevelInfo, Message: "saved"})
	b.Push(notify.Notification{Level: notify.LevelWarning, Message: "sync failed", CreatedAt: stamped})

	got := b.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, []string{"saved", "sync failed"}, messages(got))
	assert.Equal(t, bufferEpoch, got[0].CreatedAt)
	assert.Equal(t, stamped, got[1].CreatedAt)
	assert.Nil(t, b.Drain())
}

func TestNotificationBuffer_OverflowKeepsUndo(t *testing.T) {
	b := newNotificationBuffer(3, fixedNow)

	b.Push(notify.Undo(`Deleted "Plan"`, 7))
	b.Push(notify.Notification{Level: notify.LevelWarning, Message: "w1"})
	b.Push(notify.Notification{Level: notify.LevelWarning, Message: "w2"})
	b.Push(notify.Notification{Level: notify.LevelWarning, Message: "w3"})
	b.Push(notify.Notification{Level: notify.LevelWarning, Message: "w4"})

	got := b.Drain()
	assert.Equal(t, []string{`Deleted "Plan"`, "w3", "w4", "2 older notifications were dropped"}, messages(got))
	assert.Equal(t, notify.LevelWarning, got[3].Level)

	b.Push(notify.Notification{Level: notify.LevelInfo, Message: "after"})
	assert.Equal(t, []string{"after"}, messages(b.Drain()))
}

func TestNotificationBuffer_OverflowAllActions(t *testing.T) {
	b := newNotificationBuffer(2, fixedNow)

	b.Push(notify.Undo("first", 1))
	b.Push(notify.Undo("second", 2))
	b.Push(notify.Undo("third", 3))

	got := b.Drain()
	assert.Equal(t, []string{"second", "third", "1 older notification was dropped"}, messages(got))
}

func TestNotificationBuffer_SignalCoalesces(t *testing.T) {
	b := NewNotificationBuffer()
	b.Push(notify.Notification{Message: "one"})
	b.Push(notify.Notification{Message: "two"})

	_, ok := b.WaitForSignal()().(drainNotificationsMsg)
	require.True(t, ok)
	assert.Len(t, b.Drain(), 2)

	select {
	case <-b.signal:
		t.Fatal("second signal should have been coalesced")
	default:
	}
}

func TestNotificationBuffer_ConcurrentPush(t *testing.T) {
	const count = 200
	b := newNotificationBuffer(count, time.Now)

	var wg sync.WaitGroup
	for i := range count {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Push(notify.Notification{Message: fmt.Sprint(i)})
		}()
	}
	wg.Wait()

	assert.Len(t, b.Drain(), count)
}
