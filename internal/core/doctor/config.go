package doctor

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/coderev/internal/core/config"
)

// ConfigCheck validates the loaded configuration and its file.
type ConfigCheck struct {
	cfg      *config.Config
	path     string
	endpoint config.Endpoint
}

// NewConfigCheck creates a new config check.
func NewConfigCheck(cfg *config.Config, path string, endpoint config.Endpoint) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path, endpoint: endpoint}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	switch _, err := os.Stat(c.path); {
	case c.path == "":
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusPass, Detail: "none, using defaults"})
	case os.IsNotExist(err):
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusPass, Detail: c.path + " not found, using defaults"})
	default:
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusPass, Detail: c.path})
	}

	if err := c.cfg.ValidateDeep(c.path, c.endpoint); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				result.Items = append(result.Items, CheckItem{Label: fe.Field, Status: StatusFail, Detail: fe.Err.Error()})
			}
		} else {
			result.Items = append(result.Items, CheckItem{Label: "validation", Status: StatusFail, Detail: err.Error()})
		}
	} else {
		result.Items = append(result.Items, CheckItem{Label: "validation", Status: StatusPass})
	}

	for _, w := range c.cfg.Warnings() {
		result.Items = append(result.Items, CheckItem{Label: w.Item, Status: StatusWarn, Detail: w.Message})
	}

	return result
}
