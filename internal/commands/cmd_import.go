package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/kanban/internal/core/export"
	"github.com/hay-kot/kanban/internal/core/theme"
	"github.com/hay-kot/kanban/internal/kanban"
	"github.com/hay-kot/kanban/internal/printer"
	"github.com/hay-kot/kanban/pkg/iojson"
)

type ImportCmd struct {
	flags *Flags
	app   *kanban.App
	fr    *iojson.FileReader[export.Document]
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *kanban.App) *ImportCmd {
	return &ImportCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[export.Document]{},
	}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Replace the board with an export document",
		UsageText: "kanban import [-f file]",
		Description: `Reads a document written by 'kanban export' from a file or stdin.

The imported tasks replace the board. Tasks missing from the document are
deleted from the backend. A theme in the document becomes the stored
preference.`,
		Flags:  []cli.Flag{cmd.fr.Flag()},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	r, err := cmd.fr.Open()
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	if err := loadBoard(ctx, cmd.app); err != nil {
		return err
	}

	doc, jobs, err := cmd.app.Board.Import(r)
	if err != nil {
		if errors.Is(err, export.ErrInvalid) || errors.Is(err, export.ErrUnsupportedVersion) {
			return cli.Exit(fmt.Sprintf("import rejected: %v", err), 2)
		}
		return fmt.Errorf("import: %w", err)
	}

	if err := persist(ctx, cmd.app, jobs); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if doc.Theme != "" {
		if th, err := theme.Parse(doc.Theme); err == nil {
			if err := cmd.app.SaveTheme(ctx, th); err != nil {
				p.Warnf("Theme not saved: %v", err)
			}
		}
	}

	p.Successf("Imported %d tasks", len(doc.Tasks))
	return nil
}
