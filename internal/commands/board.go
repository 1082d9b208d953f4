package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/kanban"
)

// loadBoard fetches the remote tasks into the board. CLI commands have no
// event loop, so the load runs inline.
func loadBoard(ctx context.Context, app *kanban.App) error {
	if err := app.Board.Load(ctx); err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	return nil
}

// persist runs the remote writes for a command and reports how many failed.
// The local board is not rolled back, matching the TUI.
func persist(ctx context.Context, app *kanban.App, jobs []kanban.Job) error {
	failed := 0
	for _, r := range kanban.RunAll(ctx, jobs) {
		if app.Sync.Report(ctx, r) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d remote writes failed", failed, len(jobs))
	}
	return nil
}

func parseStatusArg(s string) (task.Status, error) {
	st, ok := task.ParseStatus(s)
	if !ok {
		return "", fmt.Errorf("invalid status %q: must be one of %s", s, joinStatuses())
	}
	return st, nil
}

func joinStatuses() string {
	names := make([]string, len(task.Statuses))
	for i, s := range task.Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
