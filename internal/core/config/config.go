// Package config handles configuration loading and validation for coderev.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/coderev/internal/core/review"
	"github.com/hay-kot/coderev/internal/core/styles"
)

// Mode selects which compiled default endpoint applies.
type Mode string

const (
	ModeProduction  Mode = "production"
	ModeDevelopment Mode = "development"
)

// Format controls how review content is rendered.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatMarkdown Format = "markdown"
	FormatPlain    Format = "plain"
)

const (
	// DefaultEndpoint is the deployed review service.
	DefaultEndpoint = "https://code-review-agent.workers.dev"

	// DefaultDevEndpoint is the local worker used in development mode.
	DefaultDevEndpoint = "http://localhost:8787"

	// DefaultAccept is sent so the service may answer with a stream or JSON.
	DefaultAccept = "text/event-stream, application/json"
)

// Environment variables consulted by ResolveEndpoint, in priority order.
const (
	EnvEndpoint       = "CODEREV_ENDPOINT"
	EnvEndpointLegacy = "API_URL"
)

// Config holds the application configuration.
type Config struct {
	Mode        Mode          `yaml:"mode" json:"mode"`
	Endpoint    string        `yaml:"endpoint" json:"endpoint,omitempty"`
	DevEndpoint string        `yaml:"dev_endpoint" json:"dev_endpoint"`
	Prompt      string        `yaml:"prompt" json:"prompt"`
	Language    string        `yaml:"language" json:"language,omitempty"`
	Accept      string        `yaml:"accept" json:"accept"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"` // 0 disables the client timeout
	Render      RenderConfig  `yaml:"render" json:"render"`
}

// RenderConfig holds output rendering options.
type RenderConfig struct {
	Theme    string `yaml:"theme" json:"theme"`
	Format   Format `yaml:"format" json:"format"`
	WordWrap int    `yaml:"word_wrap" json:"word_wrap"` // 0 = terminal width
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Mode:        ModeProduction,
		DevEndpoint: DefaultDevEndpoint,
		Prompt:      review.DefaultPrompt,
		Accept:      DefaultAccept,
		Render: RenderConfig{
			Theme:  styles.DefaultTheme,
			Format: FormatAuto,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
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

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Mode == "" {
		c.Mode = defaults.Mode
	}
	if c.DevEndpoint == "" {
		c.DevEndpoint = defaults.DevEndpoint
	}
	if c.Prompt == "" {
		c.Prompt = defaults.Prompt
	}
	if c.Accept == "" {
		c.Accept = defaults.Accept
	}
	if c.Render.Theme == "" {
		c.Render.Theme = defaults.Render.Theme
	}
	if c.Render.Format == "" {
		c.Render.Format = defaults.Render.Format
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeProduction, ModeDevelopment:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeProduction, ModeDevelopment, c.Mode)
	}

	switch c.Render.Format {
	case FormatAuto, FormatMarkdown, FormatPlain:
	default:
		return fmt.Errorf("render.format must be one of auto, markdown, plain, got %q", c.Render.Format)
	}

	if _, ok := styles.GetPalette(c.Render.Theme); !ok {
		return fmt.Errorf("render.theme %q is not a known theme (available: %v)", c.Render.Theme, styles.ThemeNames())
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	if c.Render.WordWrap < 0 {
		return fmt.Errorf("render.word_wrap cannot be negative")
	}

	return nil
}
