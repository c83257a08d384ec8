package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/coderev/internal/core/input"
	"github.com/hay-kot/coderev/internal/core/render"
	"github.com/hay-kot/coderev/internal/core/review"
	"github.com/hay-kot/coderev/internal/core/styles"
	"github.com/hay-kot/coderev/pkg/iojson"
)

type ReviewCmd struct {
	flags *Flags

	// flags
	file        string
	glob        string
	interactive bool
	raw         bool
	jsonOutput  bool

	// prompt replaces the interactive huh form in tests
	prompt input.PromptFunc
}

// NewReviewCmd creates a new review command
func NewReviewCmd(flags *Flags) *ReviewCmd {
	return &ReviewCmd{flags: flags}
}

// Register adds the review command to the application
func (cmd *ReviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "review",
		Usage:     "Submit code for review and print the result",
		UsageText: "coderev review [--file PATH | --glob PATTERN | --interactive] [--raw] [--json]",
		Description: `Sends code to the review service and prints the normalized review.

Code is read from --file, from every file matching --glob, from an
interactive prompt with --interactive, or from stdin when nothing else is
given. Use --json for machine-readable output.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to the file to review",
				Destination: &cmd.file,
			},
			&cli.StringFlag{
				Name:        "glob",
				Aliases:     []string{"g"},
				Usage:       "review every file matching a doublestar pattern (e.g. 'src/**/*.go')",
				Destination: &cmd.glob,
			},
			&cli.BoolFlag{
				Name:        "interactive",
				Aliases:     []string{"i"},
				Usage:       "enter the code in an interactive prompt",
				Destination: &cmd.interactive,
			},
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "also print the raw response body",
				Destination: &cmd.raw,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the result as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type reviewOutput struct {
	RequestID string `json:"request_id"`
	Endpoint  string `json:"endpoint"`
	Shape     string `json:"shape"`
	review.Result
	Raw string `json:"raw,omitempty"`
}

func (cmd *ReviewCmd) run(ctx context.Context, c *cli.Command) error {
	code, err := input.Collect(ctx, input.Source{
		File:        cmd.file,
		Glob:        cmd.glob,
		Interactive: cmd.interactive,
		Prompt:      cmd.prompt,
	})
	if err != nil {
		return cmd.fail(c, err, nil)
	}

	endpoint := cmd.flags.ResolveEndpoint()
	client := cmd.flags.NewClient(endpoint)

	log.Debug().
		Str("endpoint", endpoint.URL).
		Str("source", string(endpoint.Source)).
		Int("code_bytes", len(code)).
		Msg("submitting review")

	outcome, err := client.Submit(ctx, code)
	if err != nil {
		return cmd.fail(c, errors.New(review.UserMessage(err)), map[string]any{"endpoint": endpoint.URL})
	}

	w := c.Root().Writer

	if cmd.jsonOutput {
		out := reviewOutput{
			RequestID: outcome.RequestID,
			Endpoint:  endpoint.URL,
			Shape:     outcome.Result.Shape,
			Result:    outcome.Result,
		}
		if cmd.raw {
			out.Raw = outcome.Raw
		}
		return iojson.WriteWith(w, os.Stderr, out)
	}

	width := cmd.flags.Config.Render.WordWrap
	if width == 0 {
		width = render.TerminalWidth(os.Stdout, 80)
	}

	content := outcome.Result.Markdown()
	if r, err := render.New(cmd.flags.Config.Render.Format, width); err == nil {
		content = r.RenderOrRaw(content)
	} else {
		log.Debug().Err(err).Msg("failed to create renderer, printing raw content")
	}

	_, _ = fmt.Fprintln(w, content)

	if cmd.raw {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.DividerStyle.Render(strings.Repeat("─", 40)))
		_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render("Raw response"))
		_, _ = fmt.Fprintln(w, outcome.Raw)
	}

	return nil
}

// fail reports err in the requested output format. JSON errors go to the
// root command's error writer.
func (cmd *ReviewCmd) fail(c *cli.Command, err error, data map[string]any) error {
	if cmd.jsonOutput {
		ew := c.Root().ErrWriter
		if ew == nil {
			ew = os.Stderr
		}
		_ = iojson.WriteError(ew, err.Error(), data)
		return cli.Exit("", 1)
	}
	return err
}
