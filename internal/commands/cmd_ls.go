package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/core/view"
	"github.com/hay-kot/kanban/internal/kanban"
	"github.com/hay-kot/kanban/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *kanban.App

	// flags
	jsonOutput bool
	status     string
	query      string
	priority   string
	sort       string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *kanban.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List tasks",
		UsageText: "kanban ls [--status todo|progress|done] [--query text] [--json]",
		Description: `Displays the board as a table, one row per task, in column order.

Filtering and sorting use the same rules as the board view. Defaults come
from the board section of the config file.

Use --json for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "only show one column (todo, progress, done)",
				Destination: &cmd.status,
			},
			&cli.StringFlag{
				Name:        "query",
				Aliases:     []string{"q"},
				Usage:       "case-insensitive title/description search",
				Destination: &cmd.query,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority filter (all, low, medium, high)",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "sort",
				Usage:       "due date order (none, asc, desc)",
				Destination: &cmd.sort,
			},
		},
		Action: cmd.run,
	})

	return app
}

// taskRow is the JSON output format for kanban ls --json.
type taskRow struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Status   string     `json:"status"`
	Priority string     `json:"priority"`
	DueDate  *task.Date `json:"dueDate"`
	Pinned   bool       `json:"pinned"`
	Overdue  bool       `json:"overdue"`
	Subtasks string     `json:"subtasks,omitempty"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	crit, err := cmd.criteria()
	if err != nil {
		return err
	}

	statuses := task.Statuses
	if cmd.status != "" {
		st, err := parseStatusArg(cmd.status)
		if err != nil {
			return err
		}
		statuses = []task.Status{st}
	}

	if err := loadBoard(ctx, cmd.app); err != nil {
		return err
	}

	state := cmd.app.Board.State()
	state.Criteria = crit
	cols := cmd.app.Board.Columns()

	now := time.Now()
	var rows []taskRow
	for _, s := range statuses {
		for _, t := range cols[s] {
			rows = append(rows, newTaskRow(t, now))
		}
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, r := range rows {
			if err := iojson.WriteLine(out, r); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "No tasks found\n")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tDUE\tTITLE")
	for _, r := range rows {
		due := "-"
		if r.DueDate != nil {
			due = r.DueDate.String()
			if r.Overdue {
				due += "!"
			}
		}
		title := r.Title
		if r.Pinned {
			title = "* " + title
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Status, r.Priority, due, title)
	}
	return w.Flush()
}

func (cmd *LsCmd) criteria() (view.Criteria, error) {
	crit := cmd.app.Config.Criteria()
	crit.Query = cmd.query

	if cmd.priority != "" {
		if cmd.priority != view.PriorityAll {
			if _, ok := task.ParsePriority(cmd.priority); !ok {
				return crit, fmt.Errorf("invalid priority %q: must be one of all, low, medium, high", cmd.priority)
			}
		}
		crit.Priority = cmd.priority
	}

	if cmd.sort != "" {
		order, err := view.ParseSortOrder(cmd.sort)
		if err != nil {
			return crit, err
		}
		crit.Sort = order
	}

	return crit, nil
}

func newTaskRow(t task.Task, now time.Time) taskRow {
	r := taskRow{
		ID:       t.ID,
		Title:    t.Title,
		Status:   string(t.Status),
		Priority: string(t.Priority),
		DueDate:  t.DueDate,
		Pinned:   t.Pinned,
		Overdue:  t.Overdue(now),
	}
	if done, total := t.SubtaskProgress(); total > 0 {
		r.Subtasks = fmt.Sprintf("%d/%d", done, total)
	}
	return r
}
