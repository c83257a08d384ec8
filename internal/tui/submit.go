package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/coderev/internal/core/review"
)

// submitDoneMsg carries the result of one submission.
type submitDoneMsg struct {
	seq     int
	outcome *review.Outcome
	err     error
}

// progressMsg reports bytes received for the in-flight submission.
type progressMsg struct {
	seq      int
	received int
	ch       <-chan int
}

// copiedMsg reports the result of a clipboard write.
type copiedMsg struct {
	err error
}

// submit starts a new submission. It is a no-op while one is in flight.
// Blank input fails immediately without touching the network.
func (m Model) submit() (Model, tea.Cmd) {
	if m.state == StateSubmitting {
		return m, nil
	}

	m.outcome = nil
	m.errMsg = ""
	m.notice = ""
	m.received = 0
	m.viewport.SetContent("")

	code := m.input.Value()
	if strings.TrimSpace(code) == "" {
		m.state = StateFailure
		m.errMsg = review.UserMessage(review.ErrEmptyCode)
		return m, nil
	}

	m.state = StateSubmitting
	m.seq++

	progress := make(chan int, 32)
	return m, tea.Batch(
		m.spinner.Tick,
		submitCmd(m.ctx, m.submitter, code, m.seq, progress),
		waitForProgress(m.seq, progress),
	)
}

func submitCmd(ctx context.Context, s Submitter, code string, seq int, progress chan int) tea.Cmd {
	return func() tea.Msg {
		defer close(progress)

		outcome, err := s.SubmitFunc(ctx, code, func(n int) {
			// Drop updates rather than stall the read when the UI lags.
			select {
			case progress <- n:
			default:
			}
		})
		if err != nil {
			log.Debug().Err(err).Int("seq", seq).Msg("submission failed")
		}
		return submitDoneMsg{seq: seq, outcome: outcome, err: err}
	}
}

func waitForProgress(seq int, ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg{seq: seq, received: n, ch: ch}
	}
}

func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: write(text)}
	}
}
