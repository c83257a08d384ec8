package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/hay-kot/coderev/internal/core/review"
	"github.com/hay-kot/coderev/internal/core/styles"
	"github.com/hay-kot/coderev/internal/tui/jsoncolor"
)

// View implements tea.Model. At most one of the spinner, the error banner
// and the result pane is shown.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		styles.TitleStyle.Render(styles.IconCode + " Code Review"),
		styles.LabelStyle.Render("Code"),
		m.inputView(),
		m.statusLine(),
	}

	switch m.state {
	case StateFailure:
		banner := styles.ErrorBannerStyle.Width(max(m.width-2, 10)).
			Render(styles.IconAlert + " " + m.errMsg)
		sections = append(sections, banner)
	case StateSuccess:
		sections = append(sections, m.resultHeader(), m.resultView())
	}

	if m.showDebug {
		sections = append(sections, m.debugView())
	}

	sections = append(sections, styles.HelpStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) inputView() string {
	if m.focus == focusInput {
		return styles.InputFocusedStyle.Render(m.input.View())
	}
	return styles.InputBlurredStyle.Render(m.input.View())
}

func (m Model) resultView() string {
	if m.focus == focusResult {
		return styles.ResultFocusedStyle.Render(m.viewport.View())
	}
	return styles.ResultBlurredStyle.Render(m.viewport.View())
}

func (m Model) statusLine() string {
	switch m.state {
	case StateSubmitting:
		status := m.spinner.View() + " Analyzing..."
		if m.received > 0 {
			status += fmt.Sprintf(" %s received", humanize.Bytes(uint64(m.received)))
		}
		return styles.StatusStyle.Render(status)
	default:
		if m.notice != "" {
			return styles.SuccessStyle.Render(m.notice)
		}
		endpoint := ""
		if m.submitter != nil {
			endpoint = m.submitter.Endpoint()
		}
		return styles.StatusStyle.Render("endpoint: " + endpoint)
	}
}

func (m Model) resultHeader() string {
	res := m.outcome.Result

	var verdict string
	switch {
	case res.Status == review.StatusSuccess:
		verdict = styles.SuccessStyle.Render(styles.IconCheck + " Review passed")
	case res.Structured():
		verdict = styles.WarningStyle.Render(styles.IconAlert + " Needs improvement")
	default:
		verdict = styles.SuccessStyle.Render(styles.IconCheck + " Review")
	}

	meta := styles.MutedTextStyle.Render(fmt.Sprintf("  %s · %s", res.Shape, m.outcome.RequestID))
	return verdict + meta
}

func (m Model) debugView() string {
	title := styles.DebugTitleStyle.Render("Raw response")

	body := "(no response yet)"
	if m.outcome != nil {
		body = tailLines(jsoncolor.Colorize(m.outcome.Raw), debugHeight-2)
	}

	return styles.DebugPanelStyle.Width(max(m.width-2, 10)).Render(title + "\n" + body)
}

// tailLines returns the last n lines of s.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
