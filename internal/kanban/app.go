package kanban

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hay-kot/kanban/internal/core/board"
	"github.com/hay-kot/kanban/internal/core/config"
	"github.com/hay-kot/kanban/internal/core/notify"
	"github.com/hay-kot/kanban/internal/core/theme"
)

// App is the central entry point for board operations. Commands and the TUI
// consume App instead of cherry-picking raw dependencies.
type App struct {
	Board   *Board
	Sync    *SyncAdapter
	Notify  *notify.Bus
	Theme   *theme.Preference
	Config  *config.Config
	Backend *Backend

	log zerolog.Logger
}

// NewApp constructs an App from an opened backend. detectDark reports the
// terminal background and may be nil.
func NewApp(cfg *config.Config, backend *Backend, log zerolog.Logger, detectDark func() bool) *App {
	state := board.NewState()
	state.Criteria = cfg.Criteria()

	bus := notify.NewBus()
	sync := NewSyncAdapter(backend.Collection, log)

	return &App{
		Board:   NewBoard(state, sync, bus, log),
		Sync:    sync,
		Notify:  bus,
		Theme:   theme.NewPreference(backend.KV, detectDark),
		Config:  cfg,
		Backend: backend,
		log:     log,
	}
}

// ResolveTheme returns the theme to render with: the config override, then
// the stored preference, then the terminal background.
func (a *App) ResolveTheme(ctx context.Context) theme.Theme {
	if t, ok := a.Config.ThemeOverride(); ok {
		return t
	}
	t, _, err := a.Theme.Load(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("theme preference unreadable")
	}
	return t
}

// SaveTheme stores t as the preference. A failed write is logged and
// reported; the caller keeps rendering with t.
func (a *App) SaveTheme(ctx context.Context, t theme.Theme) error {
	if err := a.Theme.Save(ctx, t); err != nil {
		a.log.Warn().Err(err).Str("theme", t.String()).Msg("theme preference not saved")
		return err
	}
	return nil
}

// Close releases the backend.
func (a *App) Close() error {
	return a.Backend.Close()
}
