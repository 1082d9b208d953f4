package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func hasField(errs criterio.FieldErrors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg.DataDir = file

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.True(t, hasField(fieldErrs, "data_dir"), "expected error about data dir")
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.True(t, hasField(fieldErrs, "config_file"), "expected error about config file being a directory")
}

func TestValidateDeep_MissingConfigFileIsFine(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestValidateDeep_BadAzTablesConnection(t *testing.T) {
	cfg := validConfig(t)
	cfg.Backend = BackendAzTables
	cfg.AzTables.ConnectionString = "definitely-not-a-connection-string"
	cfg.AzTables.MaxRetries = -1

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.True(t, hasField(fieldErrs, "aztables.connection_string"))
	assert.True(t, hasField(fieldErrs, "aztables.max_retries"))
}

func TestValidateDeep_RunsStructuralValidationFirst(t *testing.T) {
	cfg := validConfig(t)
	cfg.Backend = "postgres"

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend")
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		category string
	}{
		{name: "memory backend", mutate: func(c *Config) { c.Backend = BackendMemory }, category: "Backend"},
		{name: "forced theme", mutate: func(c *Config) { c.Theme = "light" }, category: "Theme"},
		{name: "short toast", mutate: func(c *Config) { c.Toast.TTL = time.Second }, category: "Toast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			warnings := cfg.Warnings()
			require.Len(t, warnings, 1)
			assert.Equal(t, tt.category, warnings[0].Category)
		})
	}
}

func TestWarnings_DefaultsAreQuiet(t *testing.T) {
	assert.Empty(t, validConfig(t).Warnings())
}
