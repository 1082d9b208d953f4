package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration,
// including file accessibility and backend settings that need parsing. The
// configPath argument specifies the config file location to validate (empty
// string skips the config file check). This calls Validate() first for basic
// structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateAzTables(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Backend == BackendMemory {
		warnings = append(warnings, ValidationWarning{
			Category: "Backend",
			Item:     string(c.Backend),
			Message:  "tasks are kept in memory and lost when kanban exits",
		})
	}

	if c.Theme != "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Theme",
			Item:     c.Theme,
			Message:  "theme is forced by config; toggling in the board is not remembered",
		})
	}

	if c.Toast.TTL > 0 && c.Toast.TTL < 2*time.Second {
		warnings = append(warnings, ValidationWarning{
			Category: "Toast",
			Item:     c.Toast.TTL.String(),
			Message:  "short toast ttl leaves little time to undo",
		})
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validateAzTables parses the connection string when the backend uses it.
func (c *Config) validateAzTables() error {
	if c.Backend != BackendAzTables {
		return nil
	}

	var errs criterio.FieldErrorsBuilder
	if _, err := aztables.NewServiceClientFromConnectionString(c.AzTables.ResolvedConnectionString(), nil); err != nil {
		errs = errs.Append("aztables.connection_string", fmt.Errorf("cannot parse: %w", err))
	}
	if c.AzTables.MaxRetries < 0 {
		errs = errs.Append("aztables.max_retries", fmt.Errorf("cannot be negative"))
	}
	if c.AzTables.TryTimeout < 0 {
		errs = errs.Append("aztables.try_timeout", fmt.Errorf("cannot be negative"))
	}
	return errs.ToError()
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
