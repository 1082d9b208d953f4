package tui

import (
	"time"

	"github.com/hay-kot/kanban/internal/core/notify"
)

const (
	defaultToastTTL   = 5 * time.Second
	defaultMaxToasts  = 5
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 46
)

type toast struct {
	id           uint64
	notification notify.Notification
	remaining    time.Duration
}

// ToastController manages the lifecycle of active toast notifications.
// It handles push, eviction, TTL countdown, pausing, and dismissal.
type ToastController struct {
	toasts  []toast
	ttl     time.Duration
	max     int
	seq     uint64
	paused  bool
	ticking bool
}

// NewToastController creates a controller. Non-positive values fall back to
// the defaults.
func NewToastController(ttl time.Duration, maxToasts int) *ToastController {
	if ttl <= 0 {
		ttl = defaultToastTTL
	}
	if maxToasts <= 0 {
		maxToasts = defaultMaxToasts
	}
	return &ToastController{ttl: ttl, max: maxToasts}
}

// Push adds a notification to the toast stack and returns its id. When the
// stack exceeds the maximum the oldest toast is evicted.
func (c *ToastController) Push(n notify.Notification) uint64 {
	c.seq++
	c.toasts = append(c.toasts, toast{
		id:           c.seq,
		notification: n,
		remaining:    c.ttl,
	})
	if len(c.toasts) > c.max {
		c.toasts = c.toasts[len(c.toasts)-c.max:]
	}
	return c.seq
}

// Tick decrements the remaining TTL on all toasts by d and removes any that
// have expired. A paused controller keeps every toast.
func (c *ToastController) Tick(d time.Duration) {
	if c.paused {
		return
	}
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Pause stops the countdown, typically while the pointer rests on the stack.
func (c *ToastController) Pause() { c.paused = true }

// Resume restarts the countdown where it stopped.
func (c *ToastController) Resume() { c.paused = false }

// Paused reports whether the countdown is stopped.
func (c *ToastController) Paused() bool { return c.paused }

// Close removes the toast with id. It reports whether one was removed.
func (c *ToastController) Close(id uint64) bool {
	for i, t := range c.toasts {
		if t.id == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			if len(c.toasts) == 0 {
				c.paused = false
			}
			return true
		}
	}
	return false
}

// Get returns the toast with id.
func (c *ToastController) Get(id uint64) (notify.Notification, bool) {
	for _, t := range c.toasts {
		if t.id == id {
			return t.notification, true
		}
	}
	return notify.Notification{}, false
}

// CloseUndo removes every toast advertising undo entry entryID.
func (c *ToastController) CloseUndo(entryID uint64) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		if a := t.notification.Action; a != nil && a.Kind == notify.ActionUndo && a.EntryID == entryID {
			continue
		}
		alive = append(alive, t)
	}
	c.toasts = alive
}

// Dismiss removes the newest (bottom-most) toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.Close(c.toasts[len(c.toasts)-1].id)
	}
}

// DismissAll removes all active toasts.
func (c *ToastController) DismissAll() {
	c.toasts = c.toasts[:0]
	c.paused = false
}

// HasToasts returns true if there are any active toasts.
func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the current active toast slice, oldest first.
func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// Ticking returns whether the tick timer is currently running.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

// SetTicking sets the tick timer state.
func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}
