package kanban

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/kanban/internal/core/config"
	"github.com/hay-kot/kanban/internal/core/theme"
	"github.com/hay-kot/kanban/internal/core/view"
)

func newMemoryApp(t *testing.T, mutate func(*config.Config), detectDark func() bool) *App {
	t.Helper()
	cfg := testConfig(t, config.BackendMemory)
	if mutate != nil {
		mutate(cfg)
	}
	b, err := OpenBackend(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	return NewApp(cfg, b, zerolog.Nop(), detectDark)
}

func TestApp_InitialCriteriaFromConfig(t *testing.T) {
	app := newMemoryApp(t, func(c *config.Config) {
		c.Board.Sort = "desc"
		c.Board.Priority = "high"
	}, nil)

	crit := app.Board.State().Criteria
	assert.Equal(t, view.SortDesc, crit.Sort)
	assert.Equal(t, "high", crit.Priority)
}

func TestApp_ResolveTheme(t *testing.T) {
	ctx := context.Background()

	t.Run("detected when nothing stored", func(t *testing.T) {
		app := newMemoryApp(t, nil, func() bool { return false })
		assert.Equal(t, theme.Light, app.ResolveTheme(ctx))
	})

	t.Run("stored preference wins over detection", func(t *testing.T) {
		app := newMemoryApp(t, nil, func() bool { return false })
		require.NoError(t, app.SaveTheme(ctx, theme.Dark))
		assert.Equal(t, theme.Dark, app.ResolveTheme(ctx))
	})

	t.Run("config override wins over everything", func(t *testing.T) {
		app := newMemoryApp(t, func(c *config.Config) { c.Theme = "light" }, nil)
		require.NoError(t, app.SaveTheme(ctx, theme.Dark))
		assert.Equal(t, theme.Light, app.ResolveTheme(ctx))
	})

	t.Run("invalid stored value falls back", func(t *testing.T) {
		app := newMemoryApp(t, nil, func() bool { return true })
		require.NoError(t, app.Backend.KV.Set(ctx, theme.Key, "sepia"))
		assert.Equal(t, theme.Dark, app.ResolveTheme(ctx))
	})
}

func TestApp_SaveThemeRejectsInvalid(t *testing.T) {
	app := newMemoryApp(t, nil, nil)
	require.ErrorIs(t, app.SaveTheme(context.Background(), theme.Theme("sepia")), theme.ErrInvalid)
}
