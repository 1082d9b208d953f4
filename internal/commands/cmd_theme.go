package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/kanban/internal/core/theme"
	"github.com/hay-kot/kanban/internal/kanban"
	"github.com/hay-kot/kanban/internal/printer"
)

type ThemeCmd struct {
	flags *Flags
	app   *kanban.App
}

// NewThemeCmd creates a new theme command
func NewThemeCmd(flags *Flags, app *kanban.App) *ThemeCmd {
	return &ThemeCmd{flags: flags, app: app}
}

// Register adds the theme command to the application
func (cmd *ThemeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "theme",
		Usage: "Show or change the stored theme",
		Description: `The stored theme is used when the config file does not force one.
Without a stored value the terminal background decides.`,
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print the theme the board will use",
				UsageText: "kanban theme get",
				Action:    cmd.runGet,
			},
			{
				Name:      "set",
				Usage:     "Store a theme",
				UsageText: "kanban theme set <light|dark>",
				Action:    cmd.runSet,
			},
			{
				Name:      "reset",
				Usage:     "Forget the stored theme",
				UsageText: "kanban theme reset",
				Action:    cmd.runReset,
			},
		},
		Action: cmd.runGet,
	})

	return app
}

func (cmd *ThemeCmd) runGet(ctx context.Context, c *cli.Command) error {
	source := "detected"
	t, stored, err := cmd.app.Theme.Load(ctx)
	if err != nil {
		return err
	}
	if stored {
		source = "stored"
	}
	if forced, ok := cmd.app.Config.ThemeOverride(); ok {
		t, source = forced, "config"
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "%s (%s)\n", t, source)
	return nil
}

func (cmd *ThemeCmd) runSet(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected one of light, dark")
	}

	t, err := theme.Parse(c.Args().First())
	if err != nil {
		return err
	}
	if err := cmd.app.SaveTheme(ctx, t); err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	p.Successf("Theme set to %s", t)
	if _, ok := cmd.app.Config.ThemeOverride(); ok {
		p.Warnf("The config file forces a theme; the stored value is ignored")
	}
	return nil
}

func (cmd *ThemeCmd) runReset(ctx context.Context, _ *cli.Command) error {
	if err := cmd.app.Theme.Reset(ctx); err != nil {
		return err
	}
	printer.Ctx(ctx).Successf("Theme reset, using %s", cmd.app.Theme.Detected())
	return nil
}
