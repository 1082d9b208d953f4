package form

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/kanban/internal/core/styles"
)

// ChoiceField picks one of a fixed set of options. Left and right cycle the
// selection.
type ChoiceField struct {
	options []string
	index   int
	label   string
	focused bool
}

// NewChoiceField creates a choice field. defaultVal pre-selects the matching
// option; an unknown value selects the first.
func NewChoiceField(label string, options []string, defaultVal string) *ChoiceField {
	return &ChoiceField{
		options: options,
		index:   max(slices.Index(options, defaultVal), 0),
		label:   label,
	}
}

func (f *ChoiceField) Update(msg tea.Msg) (Field, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !f.focused || !ok || len(f.options) == 0 {
		return f, nil
	}

	switch keyMsg.String() {
	case "left", "h":
		f.index = (f.index - 1 + len(f.options)) % len(f.options)
	case "right", "l", " ":
		f.index = (f.index + 1) % len(f.options)
	}
	return f, nil
}

func (f *ChoiceField) View() string {
	parts := make([]string, len(f.options))
	for i, opt := range f.options {
		if i == f.index {
			parts[i] = styles.ModalButtonSelectedStyle.Render(opt)
		} else {
			parts[i] = styles.ModalButtonStyle.Render(opt)
		}
	}
	return renderField(f.label, strings.Join(parts, " "), "", f.focused)
}

func (f *ChoiceField) Focus() tea.Cmd {
	f.focused = true
	return nil
}

func (f *ChoiceField) Blur() { f.focused = false }

func (f *ChoiceField) Focused() bool { return f.focused }
func (f *ChoiceField) Label() string { return f.label }

func (f *ChoiceField) Value() string {
	if len(f.options) == 0 {
		return ""
	}
	return f.options[f.index]
}
