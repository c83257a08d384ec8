package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including endpoint URLs and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips the
// config file check). resolved is the endpoint that will actually be used.
// This calls Validate() first for basic structural validation.
func (c *Config) ValidateDeep(configPath string, resolved Endpoint) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateEndpoints(resolved),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Mode == ModeDevelopment && c.Endpoint != "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Endpoint",
			Item:     "endpoint",
			Message:  "endpoint is set, so dev_endpoint is ignored in development mode",
		})
	}

	if c.Timeout == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "HTTP",
			Item:     "timeout",
			Message:  "no timeout configured; a hung request waits until cancelled",
		})
	}

	if !strings.Contains(c.Accept, "text/event-stream") && !strings.Contains(c.Accept, "application/json") {
		warnings = append(warnings, ValidationWarning{
			Category: "HTTP",
			Item:     "accept",
			Message:  fmt.Sprintf("accept header %q advertises neither streams nor JSON", c.Accept),
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

func (c *Config) validateEndpoints(resolved Endpoint) error {
	var errs criterio.FieldErrorsBuilder

	if c.Endpoint != "" {
		if err := httpURL(c.Endpoint); err != nil {
			errs = errs.Append("endpoint", err)
		}
	}

	if err := httpURL(c.DevEndpoint); err != nil {
		errs = errs.Append("dev_endpoint", err)
	}

	if resolved.Source == SourceFlag || resolved.Source == SourceEnv {
		if err := httpURL(resolved.URL); err != nil {
			errs = errs.Append(fmt.Sprintf("endpoint (%s)", resolved.Source), err)
		}
	}

	return errs.ToError()
}

// httpURL validates that raw is an absolute http or https URL.
func httpURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}
