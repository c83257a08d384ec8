// Package render turns review content into terminal output.
package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/hay-kot/coderev/internal/core/config"
	"github.com/hay-kot/coderev/internal/core/styles"
)

// Renderer renders review content as markdown or plain text.
type Renderer struct {
	format config.Format
	width  int
	md     *glamour.TermRenderer
}

// New creates a renderer for the given format and wrap width. A width of
// zero disables wrapping.
func New(format config.Format, width int) (*Renderer, error) {
	if width < 0 {
		width = 0
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return &Renderer{format: format, width: width, md: md}, nil
}

// Render renders content according to the configured format. In auto mode
// the format is chosen by Detect.
func (r *Renderer) Render(content string) (string, error) {
	format := r.format
	if format == config.FormatAuto {
		format = Detect(content)
	}

	if format == config.FormatPlain {
		return r.plain(content), nil
	}

	out, err := r.md.Render(content)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// RenderOrRaw renders content and falls back to the unrendered text when
// the markdown renderer fails.
func (r *Renderer) RenderOrRaw(content string) string {
	out, err := r.Render(content)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return content
	}
	return out
}

func (r *Renderer) plain(content string) string {
	content = strings.TrimRight(content, "\n")
	if r.width <= 0 {
		return content
	}
	return ansi.Wordwrap(content, r.width, "")
}

// Detect guesses whether content is markdown. Any '#' or '*' counts, so
// code samples with comments or pointers are also treated as markdown.
func Detect(content string) config.Format {
	if strings.ContainsAny(content, "#*") {
		return config.FormatMarkdown
	}
	return config.FormatPlain
}

// TerminalWidth returns the width of f when it is a terminal, otherwise
// fallback.
func TerminalWidth(f *os.File, fallback int) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
