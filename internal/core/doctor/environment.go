package doctor

import (
	"context"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"
)

// Package-level variables to allow test overrides.
var (
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
	stdoutIsTerminal     = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

// EnvironmentCheck verifies the terminal features the review screen uses.
type EnvironmentCheck struct{}

// NewEnvironmentCheck creates a new environment check.
func NewEnvironmentCheck() *EnvironmentCheck {
	return &EnvironmentCheck{}
}

func (c *EnvironmentCheck) Name() string {
	return "Environment"
}

func (c *EnvironmentCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if stdoutIsTerminal() {
		result.Items = append(result.Items, CheckItem{Label: "terminal", Status: StatusPass})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "terminal",
			Status: StatusWarn,
			Detail: "stdout is not a terminal (use 'coderev review' for scripted runs)",
		})
	}

	if clipboardUnsupported() {
		result.Items = append(result.Items, CheckItem{
			Label:  "clipboard",
			Status: StatusWarn,
			Detail: "no clipboard utility found (copy is disabled)",
		})
	} else {
		result.Items = append(result.Items, CheckItem{Label: "clipboard", Status: StatusPass})
	}

	return result
}
