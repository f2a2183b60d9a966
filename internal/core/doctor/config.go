package doctor

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/pentaxis93/spandaworks/internal/core/config"
)

// ConfigCheck loads the config file and runs deep validation on it.
type ConfigCheck struct {
	path    string
	dataDir string
}

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(path, dataDir string) *ConfigCheck {
	return &ConfigCheck{path: path, dataDir: dataDir}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		result.Items = append(result.Items, CheckItem{
			Label:  "config",
			Status: StatusPass,
			Detail: "no config file, using defaults",
		})
		return result
	}

	cfg, err := config.Load(c.path, c.dataDir)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "config",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	if err := cfg.ValidateDeep(c.path); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				result.Items = append(result.Items, CheckItem{
					Label:  fe.Field,
					Status: StatusFail,
					Detail: fe.Err.Error(),
				})
			}
		} else {
			result.Items = append(result.Items, CheckItem{
				Label:  "config",
				Status: StatusFail,
				Detail: err.Error(),
			})
		}
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "config",
		Status: StatusPass,
		Detail: c.path,
	})
	return result
}
