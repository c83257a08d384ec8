// Package input gathers the code to submit from files, globs, stdin or an
// interactive prompt.
package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrNoInput is returned when no source was selected and stdin is a terminal.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); use --file, --glob, --interactive or pipe code on stdin")

// PromptFunc asks the user for code interactively.
type PromptFunc func(ctx context.Context) (string, error)

// Source selects where code is read from. At most one of File, Glob and
// Interactive should be set; with none set, Stdin is read.
type Source struct {
	File        string
	Glob        string
	Interactive bool

	Stdin  io.Reader                    // defaults to os.Stdin
	IsTTY  func() bool                  // defaults to a terminal check on os.Stdin
	Prompt PromptFunc                   // defaults to a huh text area
	ReadFn func(string) ([]byte, error) // defaults to os.ReadFile
}

// Collect returns the code selected by src.
func Collect(ctx context.Context, src Source) (string, error) {
	selected := 0
	for _, set := range []bool{src.File != "", src.Glob != "", src.Interactive} {
		if set {
			selected++
		}
	}
	if selected > 1 {
		return "", fmt.Errorf("--file, --glob and --interactive are mutually exclusive")
	}

	readFile := src.ReadFn
	if readFile == nil {
		readFile = os.ReadFile
	}

	switch {
	case src.File != "":
		data, err := readFile(src.File)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil

	case src.Glob != "":
		return collectGlob(src.Glob, readFile)

	case src.Interactive:
		prompt := src.Prompt
		if prompt == nil {
			prompt = HuhPrompt
		}
		return prompt(ctx)
	}

	isTTY := src.IsTTY
	if isTTY == nil {
		isTTY = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	}
	if isTTY() {
		return "", ErrNoInput
	}

	stdin := src.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// collectGlob concatenates every file matching pattern, each preceded by a
// "// file: <path>" header line.
func collectGlob(pattern string, readFile func(string) ([]byte, error)) (string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return "", fmt.Errorf("invalid glob pattern %q", pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("glob %q matched no files", pattern)
	}
	sort.Strings(matches)

	var b strings.Builder
	for i, path := range matches {
		data, err := readFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "// file: %s\n", path)
		b.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// HuhPrompt shows a multi-line text area and returns what was entered.
func HuhPrompt(ctx context.Context) (string, error) {
	var code string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Code to review").
				Description("Paste the code, then press tab and enter to submit.").
				Lines(15).
				CharLimit(0).
				Value(&code),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return code, nil
}
