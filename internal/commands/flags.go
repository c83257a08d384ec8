package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/hay-kot/coderev/internal/core/config"
	"github.com/hay-kot/coderev/internal/core/reviewapi"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Endpoint   string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// ResolveEndpoint returns the review endpoint for this run, honouring the
// --endpoint flag, the environment and the loaded config.
func (f *Flags) ResolveEndpoint() config.Endpoint {
	return f.Config.ResolveEndpoint(f.Endpoint, os.Getenv)
}

// NewClient builds a review client for endpoint from the loaded config.
func (f *Flags) NewClient(endpoint config.Endpoint, opts ...reviewapi.Option) *reviewapi.Client {
	base := []reviewapi.Option{
		reviewapi.WithPrompt(f.Config.Prompt),
		reviewapi.WithLanguage(f.Config.Language),
		reviewapi.WithAccept(f.Config.Accept),
		reviewapi.WithTimeout(f.Config.Timeout),
	}
	return reviewapi.New(endpoint.URL, append(base, opts...)...)
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "coderev", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/coderev/coderev.log
// On Linux: $XDG_STATE_HOME/coderev/coderev.log (defaults to ~/.local/state/coderev/coderev.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "coderev", "coderev.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "coderev", "coderev.log")
	}

	return filepath.Join(home, ".local", "state", "coderev", "coderev.log")
}
