// Package undo keeps the single most recent reversible board action.
//
// There is exactly one slot. Capturing a new action discards the previous one
// without running it. The toast that advertises an undo only controls
// visibility: Restore stays valid until the slot is overwritten or used.
package undo

import (
	"time"

	"github.com/hay-kot/kanban/internal/core/task"
)

// Kind names the action that can be reversed.
type Kind string

const (
	KindDelete Kind = "delete"
	KindClear  Kind = "clear"
)

// Entry describes the captured action.
type Entry struct {
	ID         uint64
	Kind       Kind
	Snapshot   []task.Task
	CapturedAt time.Time
}

// Label is a short human description used in notifications.
func (e Entry) Label() string {
	switch e.Kind {
	case KindDelete:
		if len(e.Snapshot) == 1 {
			return "Deleted \"" + e.Snapshot[0].Title + "\""
		}
		return "Deleted task"
	case KindClear:
		return "Cleared board"
	default:
		return string(e.Kind)
	}
}

// Log is the one-slot undo register.
type Log struct {
	entry   *Entry
	restore func()
	seq     uint64
	now     func() time.Time
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Capture records an action and the function that reverses it, replacing any
// previously captured action. The returned entry id identifies this capture.
func (l *Log) Capture(kind Kind, snapshot []task.Task, restore func()) Entry {
	l.seq++
	snap := make([]task.Task, len(snapshot))
	for i, t := range snapshot {
		snap[i] = t.Clone()
	}
	l.entry = &Entry{
		ID:         l.seq,
		Kind:       kind,
		Snapshot:   snap,
		CapturedAt: l.now(),
	}
	l.restore = restore
	return *l.entry
}

// Restore runs the captured reversal once and empties the slot. ok is false
// when there is nothing to undo.
func (l *Log) Restore() (Entry, bool) {
	if l.entry == nil {
		return Entry{}, false
	}

	entry, fn := *l.entry, l.restore
	l.entry, l.restore = nil, nil

	if fn != nil {
		fn()
	}
	return entry, true
}

// Pending returns the captured entry without consuming it.
func (l *Log) Pending() (Entry, bool) {
	if l.entry == nil {
		return Entry{}, false
	}
	return *l.entry, true
}

// IsCurrent reports whether id still names the captured entry.
func (l *Log) IsCurrent(id uint64) bool {
	return l.entry != nil && l.entry.ID == id
}

// Discard empties the slot without running the reversal.
func (l *Log) Discard() {
	l.entry, l.restore = nil, nil
}
