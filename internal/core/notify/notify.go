// Package notify defines the transient notifications shown to the user.
package notify

import "time"

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// ActionKind identifies what a notification's action button does.
type ActionKind string

// ActionUndo reverses the undo entry named by Action.EntryID.
const ActionUndo ActionKind = "undo"

// Action is an optional button attached to a notification.
type Action struct {
	Kind    ActionKind
	Label   string
	EntryID uint64
}

// Notification is a single message for the user.
type Notification struct {
	Level     Level
	Message   string
	Action    *Action
	CreatedAt time.Time
}

// Undo builds the notification offered after a reversible action.
func Undo(message string, entryID uint64) Notification {
	return Notification{
		Level:   LevelInfo,
		Message: message,
		Action:  &Action{Kind: ActionUndo, Label: "Undo", EntryID: entryID},
	}
}
