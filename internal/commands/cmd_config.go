package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/coderev/internal/core/config"
	"github.com/hay-kot/coderev/internal/core/styles"
	"github.com/hay-kot/coderev/pkg/iojson"
)

type ConfigCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "show",
				Usage:       "Show the effective configuration",
				UsageText:   "coderev config show [--json]",
				Description: "Prints the configuration after defaults are applied, including the resolved endpoint and where it came from.",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.show,
			},
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "coderev config validate",
				Description: "Validates the configuration file, checking endpoint URLs and file access.",
				Action:      cmd.validate,
			},
		},
	})

	return app
}

type configOutput struct {
	ConfigFile     string         `json:"config_file"`
	Endpoint       string         `json:"endpoint"`
	EndpointSource config.Source  `json:"endpoint_source"`
	Config         *config.Config `json:"config"`
}

func (cmd *ConfigCmd) show(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	endpoint := cmd.flags.ResolveEndpoint()
	w := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(w, os.Stderr, configOutput{
			ConfigFile:     cmd.flags.ConfigPath,
			Endpoint:       endpoint.URL,
			EndpointSource: endpoint.Source,
			Config:         cfg,
		})
	}

	configFile := cmd.flags.ConfigPath
	if _, err := os.Stat(configFile); err != nil {
		configFile += " (not found, using defaults)"
	}

	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}

	language := cfg.Language
	if language == "" {
		language = "-"
	}

	wordWrap := "terminal width"
	if cfg.Render.WordWrap > 0 {
		wordWrap = fmt.Sprintf("%d", cfg.Render.WordWrap)
	}

	rows := [][]string{
		{"config file", configFile},
		{"mode", string(cfg.Mode)},
		{"endpoint", endpoint.URL},
		{"endpoint source", string(endpoint.Source)},
		{"dev endpoint", cfg.DevEndpoint},
		{"prompt", fmt.Sprintf("%q", cfg.Prompt)},
		{"language", language},
		{"accept", cfg.Accept},
		{"timeout", timeout},
		{"theme", cfg.Render.Theme},
		{"format", string(cfg.Render.Format)},
		{"word wrap", wordWrap},
	}

	return renderTable(w, []string{"SETTING", "VALUE"}, rows)
}

func (cmd *ConfigCmd) validate(_ context.Context, c *cli.Command) error {
	w := c.Root().Writer
	cfg := cmd.flags.Config

	err := cfg.ValidateDeep(cmd.flags.ConfigPath, cmd.flags.ResolveEndpoint())

	for _, warn := range cfg.Warnings() {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.WarningStyle.Render(styles.IconWarning), warn.Category, warn.Message)
		if warn.Item != "" {
			_, _ = fmt.Fprintf(w, "  Item: %s\n", warn.Item)
		}
	}

	if err == nil {
		_, _ = fmt.Fprintln(w, styles.SuccessStyle.Render(styles.IconCheck+" Configuration is valid"))
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			_, _ = fmt.Fprintf(w, "%s %s: %v\n", styles.ErrorTextStyle.Render(styles.IconAlert), fe.Field, fe.Err)
		}
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.ErrorTextStyle.Render(fmt.Sprintf("%d error(s) found", len(fieldErrs))))
	} else {
		_, _ = fmt.Fprintf(w, "%s %v\n", styles.ErrorTextStyle.Render(styles.IconAlert), err)
	}

	return cli.Exit("", 1)
}

// renderTable writes a borderless, left-aligned table.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)

	table.Header(headers)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	return table.Render()
}
