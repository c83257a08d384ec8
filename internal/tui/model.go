// Package tui implements the interactive code review screen.
package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/coderev/internal/core/config"
	"github.com/hay-kot/coderev/internal/core/render"
	"github.com/hay-kot/coderev/internal/core/review"
	"github.com/hay-kot/coderev/internal/core/reviewapi"
	"github.com/hay-kot/coderev/internal/core/styles"
)

// State is the position of the screen in the submission cycle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Submitter sends code to the review service.
type Submitter interface {
	SubmitFunc(ctx context.Context, code string, progress reviewapi.ProgressFunc) (*review.Outcome, error)
	Endpoint() string
}

// Options configures the TUI.
type Options struct {
	Submitter   Submitter
	Format      config.Format
	WordWrap    int    // 0 follows the window width
	InitialCode string // pre-filled into the editor
	Clipboard   func(string) error
}

type focusArea int

const (
	focusInput focusArea = iota
	focusResult
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the Bubble Tea model for the review screen.
type Model struct {
	ctx       context.Context
	submitter Submitter
	format    config.Format
	wordWrap  int
	clipboard func(string) error

	input    textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	renderer *render.Renderer

	width, height int
	focus         focusArea

	state     State
	seq       int
	received  int
	outcome   *review.Outcome
	errMsg    string
	notice    string
	showDebug bool
	quitting  bool
}

// New creates a new review model. ctx bounds every submission made from
// the screen.
func New(ctx context.Context, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste your code here..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetValue(opts.InitialCode)
	ta.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.SpinnerStyle),
	)

	cb := opts.Clipboard
	if cb == nil {
		cb = clipboard.WriteAll
	}

	format := opts.Format
	if format == "" {
		format = config.FormatAuto
	}

	m := Model{
		ctx:       ctx,
		submitter: opts.Submitter,
		format:    format,
		wordWrap:  opts.WordWrap,
		clipboard: cb,
		input:     ta,
		spinner:   sp,
		viewport:  viewport.New(defaultWidth, defaultHeight/2),
		help:      help.New(),
		keys:      newKeyMap(),
		focus:     focusInput,
		state:     StateIdle,
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// State returns the current submission state.
func (m Model) State() State {
	return m.state
}

// Outcome returns the last successful outcome, or nil.
func (m Model) Outcome() *review.Outcome {
	return m.outcome
}

// Err returns the error message currently shown, if any.
func (m Model) Err() string {
	return m.errMsg
}
