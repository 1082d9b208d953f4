package tui

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/kanban/internal/core/notify"
)

// defaultInboxCapacity bounds notifications waiting for the event loop.
const defaultInboxCapacity = 32

// NotificationBuffer is the hand-off between bus publishers, which may run on
// job goroutines, and the event loop. Publishers never block: once the buffer
// is full the oldest notification without an action is dropped, and the next
// drain reports how many were lost.
type NotificationBuffer struct {
	mu       sync.Mutex
	pending  []notify.Notification
	capacity int
	dropped  int
	now      func() time.Time
	signal   chan struct{}
}

func NewNotificationBuffer() *NotificationBuffer {
	return newNotificationBuffer(defaultInboxCapacity, time.Now)
}

func newNotificationBuffer(capacity int, now func() time.Time) *NotificationBuffer {
	return &NotificationBuffer{
		capacity: max(capacity, 1),
		now:      now,
		signal:   make(chan struct{}, 1),
	}
}

// Push queues n and wakes WaitForSignal. It is safe to call from any
// goroutine and is the bus subscriber.
func (b *NotificationBuffer) Push(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.now()
	}

	b.mu.Lock()
	if len(b.pending) >= b.capacity {
		b.evictLocked()
	}
	b.pending = append(b.pending, n)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// evictLocked drops the oldest plain notification, or the oldest of all when
// every queued one carries an action.
func (b *NotificationBuffer) evictLocked() {
	victim := 0
	for i, n := range b.pending {
		if n.Action == nil {
			victim = i
			break
		}
	}
	b.pending = append(b.pending[:victim], b.pending[victim+1:]...)
	b.dropped++
}

// Drain returns the queued notifications in publish order and empties the
// buffer. Losses since the last drain are appended as one warning.
func (b *NotificationBuffer) Drain() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) == 0 && b.dropped == 0 {
		return nil
	}

	out := b.pending
	b.pending = nil
	if b.dropped > 0 {
		out = append(out, notify.Notification{
			Level:     notify.LevelWarning,
			Message:   fmt.Sprintf("%d older %s dropped", b.dropped, plural(b.dropped, "notification was", "notifications were")),
			CreatedAt: b.now(),
		})
		b.dropped = 0
	}
	return out
}

type drainNotificationsMsg struct{}

// WaitForSignal returns a command that resolves once something was pushed.
// Several pushes before the command runs collapse into one message.
func (b *NotificationBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainNotificationsMsg{}
	}
}
