package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/kanban/internal/core/styles"
	"github.com/hay-kot/kanban/internal/kanban"
	"github.com/hay-kot/kanban/internal/printer"
)

type RmCmd struct {
	flags *Flags
	app   *kanban.App

	// flags
	all bool
	yes bool
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *kanban.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Delete tasks",
		UsageText: "kanban rm <id>... | kanban rm --all [--yes]",
		Description: `Deletes tasks by id or unique id prefix.

Use --all to clear the board. Clearing asks for confirmation unless --yes
is given. Undo is only available inside the board.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "delete every task",
				Destination: &cmd.all,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.all && c.Args().Present() {
		return fmt.Errorf("--all does not take task ids")
	}
	if !cmd.all && !c.Args().Present() {
		return fmt.Errorf("expected at least one task id")
	}

	if err := loadBoard(ctx, cmd.app); err != nil {
		return err
	}

	if cmd.all {
		return cmd.clear(ctx)
	}

	p := printer.Ctx(ctx)
	var jobs []kanban.Job
	for _, ref := range c.Args().Slice() {
		t, err := cmd.app.Board.Resolve(ref)
		if err != nil {
			return err
		}
		_, js, err := cmd.app.Board.Delete(t.ID)
		if err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		jobs = append(jobs, js...)
		p.Successf("Deleted %q", t.Title)
	}

	return persist(ctx, cmd.app, jobs)
}

func (cmd *RmCmd) clear(ctx context.Context) error {
	p := printer.Ctx(ctx)

	n := cmd.app.Board.State().Tasks.Len()
	if n == 0 {
		p.Infof("Board is already empty")
		return nil
	}

	if !cmd.yes {
		confirmed := false
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Clear board").
					Description(fmt.Sprintf("Delete all %d tasks?", n)).
					Affirmative("Delete").
					Negative("Cancel").
					Value(&confirmed),
			),
		).WithTheme(styles.FormTheme()).Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			p.Infof("Clear cancelled")
			return nil
		}
	}

	_, jobs, _ := cmd.app.Board.Clear()
	if err := persist(ctx, cmd.app, jobs); err != nil {
		return fmt.Errorf("clear board: %w", err)
	}

	p.Successf("Deleted %d tasks", n)
	return nil
}
