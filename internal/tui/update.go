package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/coderev/internal/core/render"
	"github.com/hay-kot/coderev/internal/core/review"
)

// chromeHeight is the number of rows used by everything except the editor,
// the result viewport and the debug panel.
const (
	chromeHeight = 11
	debugHeight  = 8
	minInputRows = 5
	minViewRows  = 3
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case submitDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.state = StateFailure
			m.errMsg = review.UserMessage(msg.err)
			m.outcome = nil
			return m, nil
		}
		m.state = StateSuccess
		m.outcome = msg.outcome
		m.refreshResult()
		m.setFocus(focusResult)
		return m, nil

	case progressMsg:
		if msg.seq != m.seq || m.state != StateSubmitting {
			return m, nil
		}
		m.received = msg.received
		return m, waitForProgress(msg.seq, msg.ch)

	case spinner.TickMsg:
		if m.state != StateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case copiedMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("failed to copy result to clipboard")
			m.notice = "copy failed: " + msg.err.Error()
		} else {
			m.notice = "copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			var cmd tea.Cmd
			m, cmd = m.submit()
			return m, cmd
		case key.Matches(msg, m.keys.ToggleDebug):
			m.showDebug = !m.showDebug
			m.resize(m.width, m.height)
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			if m.outcome == nil {
				return m, nil
			}
			return m, copyCmd(m.clipboard, m.outcome.Result.Markdown())
		case key.Matches(msg, m.keys.SwitchFocus):
			if m.focus == focusInput {
				m.setFocus(focusResult)
			} else {
				m.setFocus(focusInput)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// resize lays out the editor, result viewport and debug panel for a
// width x height window and re-renders the current result.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	inputRows := max(height/3, minInputRows)
	m.input.SetWidth(max(width-2, 10))
	m.input.SetHeight(inputRows)

	viewRows := height - inputRows - chromeHeight
	if m.showDebug {
		viewRows -= debugHeight
	}
	m.viewport.Width = max(width-4, 10)
	m.viewport.Height = max(viewRows, minViewRows)
	m.help.Width = width

	wrap := m.wordWrap
	if wrap == 0 {
		wrap = m.viewport.Width - 2
	}
	r, err := render.New(m.format, wrap)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		r = nil
	}
	m.renderer = r

	m.refreshResult()
}

func (m *Model) refreshResult() {
	if m.outcome == nil {
		m.viewport.SetContent("")
		return
	}

	content := m.outcome.Result.Markdown()
	if m.renderer != nil {
		content = m.renderer.RenderOrRaw(content)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}
