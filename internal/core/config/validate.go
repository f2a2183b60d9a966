package config

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/hay-kot/criterio"
)

// lookPathFunc is the function used to locate executables. Tests override it.
var lookPathFunc = exec.LookPath

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// file accessibility and executable lookup. The configPath argument specifies
// the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("inbox.command", c.Inbox.Command, executableExists),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("pim.contacts_dir", c.PIM.ContactsDir, isDirectoryOrNotExist),
		criterio.Run("opencode.skill_dir", c.OpenCode.SkillDir, isDirectoryOrNotExist),
	)
}

// Warnings returns non-fatal configuration issues: PIM tools that are not
// installed and an address book that does not exist yet.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	tools := []struct{ field, path string }{
		{"pim.khal", c.PIM.Khal},
		{"pim.khard", c.PIM.Khard},
		{"pim.notmuch", c.PIM.Notmuch},
		{"pim.himalaya", c.PIM.Himalaya},
	}
	for _, tool := range tools {
		if err := executableExists(tool.path); err != nil {
			warnings = append(warnings, ValidationWarning{
				Category: "PIM",
				Item:     tool.field,
				Message:  err.Error(),
			})
		}
	}

	if _, err := os.Stat(c.PIM.ContactsDir); os.IsNotExist(err) {
		warnings = append(warnings, ValidationWarning{
			Category: "PIM",
			Item:     "pim.contacts_dir",
			Message:  "address book does not exist; create_contact will create it",
		})
	}

	return warnings
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

// executableExists validates that path resolves to an executable.
func executableExists(path string) error {
	if path == "" {
		return nil
	}
	if _, err := lookPathFunc(path); err != nil {
		return fmt.Errorf("executable not found: %s", path)
	}
	return nil
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
