package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/core/theme"
)

func TestSetTheme_SwitchesPalette(t *testing.T) {
	t.Cleanup(func() { SetTheme(theme.Dark) })

	SetTheme(theme.Light)
	assert.Equal(t, theme.Light, Current)
	assert.Equal(t, palettes[theme.Light].Primary, CurrentPalette.Primary)

	SetTheme(theme.Dark)
	assert.Equal(t, theme.Dark, Current)
	assert.Equal(t, palettes[theme.Dark].Primary, CurrentPalette.Primary)
}

func TestSetTheme_UnknownFallsBackToDark(t *testing.T) {
	t.Cleanup(func() { SetTheme(theme.Dark) })

	SetTheme(theme.Theme("neon"))
	assert.Equal(t, theme.Dark, Current)
	assert.Equal(t, palettes[theme.Dark], CurrentPalette)
}

func TestStatusColor_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range task.Statuses {
		seen[string(StatusColor(s))] = true
	}
	assert.Len(t, seen, len(task.Statuses))
}

func TestGlamourStyle_UsesPalette(t *testing.T) {
	t.Cleanup(func() { SetTheme(theme.Dark) })
	SetTheme(theme.Light)

	cfg := GlamourStyle()
	if assert.NotNil(t, cfg.Paragraph.Color) {
		assert.Equal(t, string(palettes[theme.Light].Foreground), *cfg.Paragraph.Color)
	}
}

func TestFormTheme_FollowsPalette(t *testing.T) {
	SetTheme(theme.Light)
	ft := FormTheme()
	require.NotNil(t, ft)
	assert.Equal(t, lipgloss.TerminalColor(PaletteFor(theme.Light).Primary), ft.Focused.Title.GetForeground())
	assert.Equal(t, lipgloss.TerminalColor(PaletteFor(theme.Light).Muted), ft.Blurred.Title.GetForeground())
}
