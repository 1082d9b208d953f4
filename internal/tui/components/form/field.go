// Package form provides the focusable fields and the dialog that hosts them
// for the task editor.
package form

import tea "github.com/charmbracelet/bubbletea"

// Field is the interface implemented by all form field types.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() string
	Label() string
}

// validator is implemented by fields that can reject their value.
type validator interface {
	Validate() string
}
