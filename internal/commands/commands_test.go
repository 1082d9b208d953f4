package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/kanban/internal/core/config"
	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/core/theme"
	"github.com/hay-kot/kanban/internal/kanban"
	"github.com/hay-kot/kanban/internal/printer"
)

// testEnv runs commands against one sqlite data dir, opening a fresh App for
// every invocation like separate processes would.
type testEnv struct {
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &testEnv{cfg: &cfg}
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

func (e *testEnv) run(t *testing.T, args ...string) runResult {
	t.Helper()
	ctx := context.Background()

	backend, err := kanban.OpenBackend(ctx, e.cfg, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	app := kanban.NewApp(e.cfg, backend, zerolog.Nop(), func() bool { return true })
	flags := &Flags{Config: e.cfg}

	var out, errOut bytes.Buffer
	root := &cli.Command{
		Name:           "kanban",
		Writer:         &out,
		ErrWriter:      &errOut,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = NewLsCmd(flags, app).Register(root)
	root = NewAddCmd(flags, app).Register(root)
	root = NewMvCmd(flags, app).Register(root)
	root = NewRmCmd(flags, app).Register(root)
	root = NewExportCmd(flags, app).Register(root)
	root = NewImportCmd(flags, app).Register(root)
	root = NewThemeCmd(flags, app).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)

	ctx = printer.NewContext(ctx, printer.New(&errOut))
	err = root.Run(ctx, append([]string{"kanban"}, args...))
	return runResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

func (e *testEnv) add(t *testing.T, args ...string) string {
	t.Helper()
	res := e.run(t, append([]string{"add"}, args...)...)
	require.NoError(t, res.err)
	return strings.TrimSpace(res.stdout)
}

func (e *testEnv) rows(t *testing.T, args ...string) []taskRow {
	t.Helper()
	res := e.run(t, append([]string{"ls", "--json"}, args...)...)
	require.NoError(t, res.err)

	var rows []taskRow
	for line := range strings.SplitSeq(strings.TrimSpace(res.stdout), "\n") {
		if line == "" {
			continue
		}
		var r taskRow
		require.NoError(t, json.Unmarshal([]byte(line), &r))
		rows = append(rows, r)
	}
	return rows
}

func TestAdd_PersistsAcrossInvocations(t *testing.T) {
	env := newTestEnv(t)

	id := env.add(t, "--title", "Write docs", "--priority", "high", "--status", "progress", "--due", "2026-11-01")
	require.NotEmpty(t, id)

	rows := env.rows(t)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].ID)
	assert.Equal(t, "Write docs", rows[0].Title)
	assert.Equal(t, "progress", rows[0].Status)
	assert.Equal(t, "high", rows[0].Priority)
	require.NotNil(t, rows[0].DueDate)
	assert.Equal(t, "2026-11-01", rows[0].DueDate.String())
}

func TestAdd_InvalidFlags(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "status", args: []string{"--title", "x", "--status", "later"}, want: "must be one of todo"},
		{name: "priority", args: []string{"--title", "x", "--priority", "urgent"}, want: "must be one of low"},
		{name: "due", args: []string{"--title", "x", "--due", "tomorrow"}, want: "YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run(t, append([]string{"add"}, tt.args...)...)
			assert.ErrorContains(t, res.err, tt.want)
		})
	}

	assert.Empty(t, env.rows(t))
}

func TestLs_Filters(t *testing.T) {
	env := newTestEnv(t)
	env.add(t, "--title", "Alpha", "--priority", "low")
	env.add(t, "--title", "Beta", "--priority", "high", "--status", "done")
	env.add(t, "--title", "Gamma", "--description", "alpha release", "--priority", "high")

	titles := func(rows []taskRow) []string {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = r.Title
		}
		return out
	}

	assert.Equal(t, []string{"Alpha", "Gamma", "Beta"}, titles(env.rows(t)))
	assert.Equal(t, []string{"Beta"}, titles(env.rows(t, "--status", "done")))
	assert.Equal(t, []string{"Gamma", "Beta"}, titles(env.rows(t, "--priority", "high")))
	assert.Equal(t, []string{"Alpha", "Gamma"}, titles(env.rows(t, "--query", "ALPHA")))

	res := env.run(t, "ls", "--sort", "sideways")
	assert.ErrorContains(t, res.err, "invalid sort order")
}

func TestLs_Table(t *testing.T) {
	env := newTestEnv(t)

	res := env.run(t, "ls")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	env.add(t, "--title", "Ship it")
	res = env.run(t, "ls")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "TITLE")
	assert.Contains(t, res.stdout, "Ship it")
	assert.Contains(t, res.stdout, "medium")
}

func TestMv(t *testing.T) {
	env := newTestEnv(t)
	id := env.add(t, "--title", "Move me")

	res := env.run(t, "mv", id[:8], "done")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, `Moved "Move me" to Done`)

	rows := env.rows(t)
	require.Len(t, rows, 1)
	assert.Equal(t, string(task.StatusDone), rows[0].Status)

	res = env.run(t, "mv", id, "done")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "already in Done")

	res = env.run(t, "mv", id, "someday")
	assert.ErrorContains(t, res.err, "invalid status")

	res = env.run(t, "mv", "zzzz", "todo")
	assert.ErrorIs(t, res.err, task.ErrNotFound)

	res = env.run(t, "mv", id)
	assert.Error(t, res.err)
}

func TestRm(t *testing.T) {
	env := newTestEnv(t)
	keep := env.add(t, "--title", "Keep")
	drop := env.add(t, "--title", "Drop")

	res := env.run(t, "rm", drop)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, `Deleted "Drop"`)

	rows := env.rows(t)
	require.Len(t, rows, 1)
	assert.Equal(t, keep, rows[0].ID)

	res = env.run(t, "rm")
	assert.ErrorContains(t, res.err, "at least one task id")

	res = env.run(t, "rm", "--all", keep)
	assert.ErrorContains(t, res.err, "does not take task ids")
}

func TestRm_AllYes(t *testing.T) {
	env := newTestEnv(t)
	env.add(t, "--title", "One")
	env.add(t, "--title", "Two")

	res := env.run(t, "rm", "--all", "--yes")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Deleted 2 tasks")
	assert.Empty(t, env.rows(t))

	res = env.run(t, "rm", "--all", "--yes")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "already empty")
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := newTestEnv(t)
	src.add(t, "--title", "Exported", "--priority", "high")
	src.add(t, "--title", "Also exported", "--status", "done")
	require.NoError(t, src.run(t, "theme", "set", "light").err)

	path := filepath.Join(t.TempDir(), "board.json")
	res := src.run(t, "export", "-o", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Exported 2 tasks")

	dst := newTestEnv(t)
	stale := dst.add(t, "--title", "Stale")

	res = dst.run(t, "import", "-f", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Imported 2 tasks")

	rows := dst.rows(t)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.NotEqual(t, stale, r.ID)
	}
	assert.Equal(t, src.rows(t), rows)

	res = dst.run(t, "theme", "get")
	require.NoError(t, res.err)
	assert.Equal(t, "light (stored)\n", res.stdout)
}

func TestExport_Stdout(t *testing.T) {
	env := newTestEnv(t)
	env.add(t, "--title", "Only")

	res := env.run(t, "export")
	require.NoError(t, res.err)

	var doc struct {
		Version int `json:"version"`
		Tasks   []struct {
			Title string `json:"title"`
		} `json:"tasks"`
		Theme string `json:"theme"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, 1, doc.Version)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "Only", doc.Tasks[0].Title)
	assert.Equal(t, "dark", doc.Theme)
}

func TestImport_RejectsInvalidDocument(t *testing.T) {
	env := newTestEnv(t)
	id := env.add(t, "--title", "Survivor")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"tasks":[{"title":42}]}`), 0o644))

	res := env.run(t, "import", "-f", path)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "import rejected")

	rows := env.rows(t)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].ID)
}

func TestTheme(t *testing.T) {
	env := newTestEnv(t)

	res := env.run(t, "theme", "get")
	require.NoError(t, res.err)
	assert.Equal(t, "dark (detected)\n", res.stdout)

	require.NoError(t, env.run(t, "theme", "set", "light").err)
	res = env.run(t, "theme")
	require.NoError(t, res.err)
	assert.Equal(t, "light (stored)\n", res.stdout)

	res = env.run(t, "theme", "set", "sepia")
	assert.ErrorIs(t, res.err, theme.ErrInvalid)

	require.NoError(t, env.run(t, "theme", "reset").err)
	res = env.run(t, "theme", "get")
	require.NoError(t, res.err)
	assert.Equal(t, "dark (detected)\n", res.stdout)

	env.cfg.Theme = "light"
	res = env.run(t, "theme", "get")
	require.NoError(t, res.err)
	assert.Equal(t, "light (config)\n", res.stdout)
}

func TestConfigValidate(t *testing.T) {
	env := newTestEnv(t)

	res := env.run(t, "config", "validate")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Configuration is valid")

	env.cfg.Backend = config.BackendMemory
	res = env.run(t, "config", "validate", "--format", "json")
	require.NoError(t, res.err)

	var out struct {
		Valid    bool                       `json:"valid"`
		Warnings []config.ValidationWarning `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.True(t, out.Valid)
	require.NotEmpty(t, out.Warnings)
	assert.Equal(t, "Backend", out.Warnings[0].Category)
}
