package form

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/kanban/internal/core/styles"
)

// TextField is a single-line text input form field.
type TextField struct {
	input      textinput.Model
	label      string
	focused    bool
	err        string
	Validation FieldValidation
}

// NewTextField creates a new single-line text input field.
func NewTextField(label, placeholder, defaultVal string) *TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = 48
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.CurrentPalette.Muted)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CurrentPalette.Primary)

	if defaultVal != "" {
		ti.SetValue(defaultVal)
	}

	return &TextField{
		input: ti,
		label: label,
	}
}

func (f *TextField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.err = ""
	return f, cmd
}

func (f *TextField) View() string {
	return renderField(f.label, f.input.View(), f.err, f.focused)
}

func (f *TextField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

func (f *TextField) Blur() {
	f.focused = false
	f.input.Blur()
}

// Validate checks the value and records the message shown under the field.
func (f *TextField) Validate() string {
	f.err = f.Validation.ValidateText(f.input.Value())
	return f.err
}

func (f *TextField) Focused() bool { return f.focused }
func (f *TextField) Value() string { return f.input.Value() }
func (f *TextField) Label() string { return f.label }
func (f *TextField) SetValue(s string) { f.input.SetValue(s) }

func renderField(label, body, errMsg string, focused bool) string {
	titleStyle, borderStyle := styles.FormLabelStyle, styles.FormFieldStyle
	if focused {
		titleStyle, borderStyle = styles.FormLabelFocusedStyle, styles.FormFieldFocusedStyle
	}

	parts := []string{titleStyle.Render(label), body}
	if errMsg != "" {
		parts = append(parts, styles.FormErrorStyle.Render(errMsg))
	}
	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
