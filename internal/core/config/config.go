// Package config handles configuration loading and validation for kanban.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/core/theme"
	"github.com/hay-kot/kanban/internal/core/view"
)

// Backend selects where task documents are stored.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendAzTables Backend = "aztables"
	BackendMemory   Backend = "memory"
)

// IsValid reports whether b names a supported backend.
func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendAzTables, BackendMemory:
		return true
	default:
		return false
	}
}

// Config holds the application configuration.
type Config struct {
	Backend  Backend        `yaml:"backend"`
	Database DatabaseConfig `yaml:"database"`
	AzTables AzTablesConfig `yaml:"aztables"`
	Toast    ToastConfig    `yaml:"toast"`
	Board    BoardConfig    `yaml:"board"`
	// Theme forces light or dark, ignoring the stored preference. Empty
	// means use the stored preference or the terminal background.
	Theme   string `yaml:"theme"`
	DataDir string `yaml:"-"` // set by caller, not from config file
}

// DatabaseConfig tunes the local SQLite database.
type DatabaseConfig struct {
	MaxOpenConns  int `yaml:"max_open_conns"`
	MaxIdleConns  int `yaml:"max_idle_conns"`
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`
}

// AzTablesConfig configures the Azure Table Storage backend.
type AzTablesConfig struct {
	// ConnectionString may reference environment variables as $VAR or ${VAR}.
	ConnectionString string        `yaml:"connection_string"`
	Table            string        `yaml:"table"`
	PartitionKey     string        `yaml:"partition_key"`
	MaxRetries       int32         `yaml:"max_retries"`
	TryTimeout       time.Duration `yaml:"try_timeout"`
}

// ResolvedConnectionString expands environment references.
func (a AzTablesConfig) ResolvedConnectionString() string {
	return os.ExpandEnv(a.ConnectionString)
}

// ToastConfig controls notification lifetime.
type ToastConfig struct {
	TTL time.Duration `yaml:"ttl"`
	Max int           `yaml:"max"`
}

// BoardConfig holds the initial view criteria.
type BoardConfig struct {
	Sort     string `yaml:"sort"`
	Priority string `yaml:"priority"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendSQLite,
		Database: DatabaseConfig{
			MaxOpenConns:  10,
			MaxIdleConns:  5,
			BusyTimeoutMS: 5000,
		},
		AzTables: AzTablesConfig{
			Table:        "tasks",
			PartitionKey: "tasks",
			MaxRetries:   3,
			TryTimeout:   30 * time.Second,
		},
		Toast: ToastConfig{
			TTL: 5 * time.Second,
			Max: 5,
		},
		Board: BoardConfig{
			Sort:     string(view.SortNone),
			Priority: view.PriorityAll,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Backend == "" {
		c.Backend = defaults.Backend
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeoutMS == 0 {
		c.Database.BusyTimeoutMS = defaults.Database.BusyTimeoutMS
	}
	if c.AzTables.Table == "" {
		c.AzTables.Table = defaults.AzTables.Table
	}
	if c.AzTables.PartitionKey == "" {
		c.AzTables.PartitionKey = defaults.AzTables.PartitionKey
	}
	if c.AzTables.MaxRetries == 0 {
		c.AzTables.MaxRetries = defaults.AzTables.MaxRetries
	}
	if c.AzTables.TryTimeout == 0 {
		c.AzTables.TryTimeout = defaults.AzTables.TryTimeout
	}
	if c.Toast.TTL == 0 {
		c.Toast.TTL = defaults.Toast.TTL
	}
	if c.Toast.Max == 0 {
		c.Toast.Max = defaults.Toast.Max
	}
	if c.Board.Sort == "" {
		c.Board.Sort = defaults.Board.Sort
	}
	if c.Board.Priority == "" {
		c.Board.Priority = defaults.Board.Priority
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if !c.Backend.IsValid() {
		return fmt.Errorf("backend %q must be one of sqlite, aztables, memory", c.Backend)
	}

	if c.Backend == BackendAzTables && c.AzTables.ResolvedConnectionString() == "" {
		return fmt.Errorf("aztables.connection_string is required when backend is aztables")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.BusyTimeoutMS < 0 {
		return fmt.Errorf("database.busy_timeout_ms cannot be negative")
	}

	if c.Toast.TTL < 0 {
		return fmt.Errorf("toast.ttl cannot be negative")
	}
	if c.Toast.Max < 1 {
		return fmt.Errorf("toast.max must be at least 1")
	}

	if _, err := view.ParseSortOrder(c.Board.Sort); err != nil {
		return fmt.Errorf("board.sort: %w", err)
	}
	if !strings.EqualFold(c.Board.Priority, view.PriorityAll) {
		if _, ok := task.ParsePriority(c.Board.Priority); !ok {
			return fmt.Errorf("board.priority %q must be one of all, low, medium, high", c.Board.Priority)
		}
	}

	if c.Theme != "" {
		if _, err := theme.Parse(c.Theme); err != nil {
			return fmt.Errorf("theme: %w", err)
		}
	}

	return nil
}

// Criteria returns the initial view criteria from the board settings.
func (c *Config) Criteria() view.Criteria {
	crit := view.DefaultCriteria()
	if s, err := view.ParseSortOrder(c.Board.Sort); err == nil {
		crit.Sort = s
	}
	if c.Board.Priority != "" {
		crit.Priority = c.Board.Priority
	}
	return crit
}

// ThemeOverride returns the forced theme, if any.
func (c *Config) ThemeOverride() (theme.Theme, bool) {
	if c.Theme == "" {
		return "", false
	}
	t, err := theme.Parse(c.Theme)
	if err != nil {
		return "", false
	}
	return t, true
}

// LogFile returns the default log file path inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "kanban.log")
}
