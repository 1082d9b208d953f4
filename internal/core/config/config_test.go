package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/core/theme"
	"github.com/hay-kot/kanban/internal/core/view"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, 5*time.Second, cfg.Toast.TTL)
	assert.Equal(t, 5, cfg.Toast.Max)
	assert.Equal(t, view.DefaultCriteria(), cfg.Criteria())
	assert.Equal(t, filepath.Join(dataDir, "kanban.log"), cfg.LogFile())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
backend: memory
toast:
  ttl: 8s
board:
  sort: desc
  priority: high
theme: light
database:
  max_open_conns: 3
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, 8*time.Second, cfg.Toast.TTL)
	assert.Equal(t, 5, cfg.Toast.Max, "unset fields keep defaults")
	assert.Equal(t, 3, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)

	crit := cfg.Criteria()
	assert.Equal(t, view.SortDesc, crit.Sort)
	assert.Equal(t, string(task.PriorityHigh), crit.Priority)

	forced, ok := cfg.ThemeOverride()
	assert.True(t, ok)
	assert.Equal(t, theme.Light, forced)
}

func TestLoad_DataDirNotOverriddenByFile(t *testing.T) {
	dataDir := t.TempDir()
	path := writeConfig(t, "backend: sqlite\n")

	cfg, err := Load(path, dataDir)
	require.NoError(t, err)
	assert.Equal(t, dataDir, cfg.DataDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "backend: [\n"), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: "data directory"},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "redis" }, wantErr: "backend"},
		{
			name:    "aztables without connection",
			mutate:  func(c *Config) { c.Backend = BackendAzTables },
			wantErr: "aztables.connection_string",
		},
		{name: "zero toast max", mutate: func(c *Config) { c.Toast.Max = 0 }, wantErr: "toast.max"},
		{name: "negative ttl", mutate: func(c *Config) { c.Toast.TTL = -time.Second }, wantErr: "toast.ttl"},
		{name: "bad sort", mutate: func(c *Config) { c.Board.Sort = "sideways" }, wantErr: "board.sort"},
		{name: "bad priority", mutate: func(c *Config) { c.Board.Priority = "urgent" }, wantErr: "board.priority"},
		{name: "priority all any case", mutate: func(c *Config) { c.Board.Priority = "ALL" }},
		{name: "bad theme", mutate: func(c *Config) { c.Theme = "sepia" }, wantErr: "theme"},
		{name: "no open conns", mutate: func(c *Config) { c.Database.MaxOpenConns = 0 }, wantErr: "max_open_conns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAzTablesConfig_ResolvedConnectionString(t *testing.T) {
	t.Setenv("KANBAN_TEST_CONN", "UseDevelopmentStorage=true")

	a := AzTablesConfig{ConnectionString: "${KANBAN_TEST_CONN}"}
	assert.Equal(t, "UseDevelopmentStorage=true", a.ResolvedConnectionString())
}
