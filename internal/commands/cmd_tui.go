package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/coderev/internal/profiler"
	"github.com/hay-kot/coderev/internal/tui"
)

type TuiCmd struct {
	flags *Flags

	// flags
	open         string
	profilerPort int
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "open",
			Usage:       "pre-fill the editor with the contents of a file",
			Local:       true,
			Destination: &cmd.open,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on 127.0.0.1 at the given port (e.g., 6060)",
			Sources:     cli.EnvVars("CODEREV_PROFILER_PORT"),
			Local:       true,
			Destination: &cmd.profilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	var initial string
	if cmd.open != "" {
		data, err := os.ReadFile(cmd.open)
		if err != nil {
			return fmt.Errorf("read %s: %w", cmd.open, err)
		}
		initial = string(data)
	}

	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	endpoint := cmd.flags.ResolveEndpoint()
	log.Info().
		Str("endpoint", endpoint.URL).
		Str("source", string(endpoint.Source)).
		Msg("starting review screen")

	// Cancelled when the program exits so in-flight submissions abort.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := tui.New(ctx, tui.Options{
		Submitter:   cmd.flags.NewClient(endpoint),
		Format:      cmd.flags.Config.Render.Format,
		WordWrap:    cmd.flags.Config.Render.WordWrap,
		InitialCode: initial,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	cancel()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
