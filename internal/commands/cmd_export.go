package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/kanban/internal/kanban"
	"github.com/hay-kot/kanban/internal/printer"
)

type ExportCmd struct {
	flags *Flags
	app   *kanban.App

	// flags
	output string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *kanban.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Write the board as JSON",
		UsageText: "kanban export [-o file]",
		Description: `Writes every task and the current theme as an export document.
The document can be read back with 'kanban import'.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write to file instead of stdout",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	if err := loadBoard(ctx, cmd.app); err != nil {
		return err
	}

	var w io.Writer = c.Root().Writer
	if cmd.output != "" {
		f, err := os.Create(cmd.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	th := cmd.app.ResolveTheme(ctx)
	if err := cmd.app.Board.Export(w, th.String()); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if cmd.output != "" {
		printer.Ctx(ctx).Successf("Exported %d tasks to %s", cmd.app.Board.State().Tasks.Len(), cmd.output)
	}
	return nil
}
