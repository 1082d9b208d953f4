package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/kanban/internal/kanban"
	"github.com/hay-kot/kanban/internal/printer"
)

type MvCmd struct {
	flags *Flags
	app   *kanban.App
}

// NewMvCmd creates a new mv command
func NewMvCmd(flags *Flags, app *kanban.App) *MvCmd {
	return &MvCmd{flags: flags, app: app}
}

// Register adds the mv command to the application
func (cmd *MvCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "mv",
		Usage:     "Move a task to another column",
		UsageText: "kanban mv <id> <todo|progress|done>",
		Description: `Sets the status of a task. The id may be any unique prefix
of the task id as shown by 'kanban ls'.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *MvCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected <id> <status>, got %d argument(s)", c.Args().Len())
	}

	to, err := parseStatusArg(c.Args().Get(1))
	if err != nil {
		return err
	}

	if err := loadBoard(ctx, cmd.app); err != nil {
		return err
	}

	t, err := cmd.app.Board.Resolve(c.Args().First())
	if err != nil {
		return err
	}

	if t.Status == to {
		printer.Ctx(ctx).Infof("%q is already in %s", t.Title, to.Label())
		return nil
	}

	jobs, err := cmd.app.Board.Move(t.ID, to)
	if err != nil {
		return fmt.Errorf("move task: %w", err)
	}
	if err := persist(ctx, cmd.app, jobs); err != nil {
		return fmt.Errorf("move task: %w", err)
	}

	printer.Ctx(ctx).Successf("Moved %q to %s", t.Title, to.Label())
	return nil
}
