package form

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestTextField(t *testing.T) {
	t.Run("creation with default value", func(t *testing.T) {
		f := NewTextField("Name", "enter name", "hello")
		assert.Equal(t, "Name", f.Label())
		assert.Equal(t, "hello", f.Value())
		assert.False(t, f.Focused())
	})

	t.Run("focus and blur", func(t *testing.T) {
		f := NewTextField("Name", "", "")
		f.Focus()
		assert.True(t, f.Focused())
		f.Blur()
		assert.False(t, f.Focused())
	})

	t.Run("update ignored when not focused", func(t *testing.T) {
		f := NewTextField("Name", "", "")
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
		assert.Empty(t, f.Value())
	})

	t.Run("typing clears a previous error", func(t *testing.T) {
		f := NewTextField("Name", "", "")
		f.Validation = FieldValidation{Required: true}
		assert.Equal(t, "required", f.Validate())

		f.Focus()
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
		assert.NotContains(t, f.View(), "required")
		assert.Equal(t, "a", f.Value())
	})
}
