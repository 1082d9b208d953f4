package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/kanban/internal/core/styles"
	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/core/validate"
	"github.com/hay-kot/kanban/internal/kanban"
	"github.com/hay-kot/kanban/internal/printer"
)

type AddCmd struct {
	flags *Flags
	app   *kanban.App

	// Command-specific flags
	title       string
	description string
	status      string
	priority    string
	due         string
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *kanban.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Create a task",
		UsageText: "kanban add [options]",
		Description: `Creates a task and writes it to the configured backend.

When --title is omitted, an interactive form prompts for input.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "task title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "task description (markdown)",
				Destination: &cmd.description,
			},
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "column (todo, progress, done)",
				Value:       string(task.StatusTodo),
				Destination: &cmd.status,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority (low, medium, high)",
				Value:       string(task.PriorityMedium),
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "due",
				Usage:       "due date (YYYY-MM-DD)",
				Destination: &cmd.due,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	// Show interactive form if title not provided via flag
	if cmd.title == "" {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	t, err := cmd.task()
	if err != nil {
		return err
	}

	if err := loadBoard(ctx, cmd.app); err != nil {
		return err
	}

	added, jobs, err := cmd.app.Board.Create(t)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	if err := persist(ctx, cmd.app, jobs); err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	p.Successf("Created %q", added.Title)
	_, _ = fmt.Fprintln(c.Root().Writer, added.ID)
	return nil
}

func (cmd *AddCmd) task() (task.Task, error) {
	if err := validate.TaskInput(cmd.title, cmd.status, cmd.priority, cmd.due); err != nil {
		return task.Task{}, fmt.Errorf("invalid task: %w", err)
	}

	st, _ := task.ParseStatus(cmd.status)
	prio, _ := task.ParsePriority(cmd.priority)
	t := task.Task{
		Title:       cmd.title,
		Description: cmd.description,
		Status:      st,
		Priority:    prio,
	}

	if due := strings.TrimSpace(cmd.due); due != "" {
		d, err := task.ParseDate(due)
		if err != nil {
			return task.Task{}, err
		}
		t.DueDate = &d
	}

	return t, nil
}

func (cmd *AddCmd) runForm() error {
	fmt.Println(styles.CommandHeaderStyle.Render(styles.IconBoard + " New task"))
	fmt.Println()

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(validate.Title).
				Value(&cmd.title),
			huh.NewText().
				Title("Description").
				Description("Markdown is rendered in the detail view").
				Value(&cmd.description),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions()...).
				Value(&cmd.status),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions()...).
				Value(&cmd.priority),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, leave empty for none").
				Validate(validate.DueDate).
				Value(&cmd.due),
		),
	).WithTheme(styles.FormTheme()).Run()
}

func statusOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(task.Statuses))
	for i, s := range task.Statuses {
		opts[i] = huh.NewOption(s.Label(), string(s))
	}
	return opts
}

func priorityOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(task.Priorities))
	for i, p := range task.Priorities {
		opts[i] = huh.NewOption(string(p), string(p))
	}
	return opts
}
