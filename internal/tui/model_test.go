package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/coderev/internal/core/review"
	"github.com/hay-kot/coderev/internal/core/reviewapi"
	"github.com/hay-kot/coderev/pkg/tuitest"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   []string
	outcome *review.Outcome
	err     error
}

func (f *fakeSubmitter) SubmitFunc(_ context.Context, code string, progress reviewapi.ProgressFunc) (*review.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, code)
	if progress != nil {
		progress(42)
	}
	return f.outcome, f.err
}

func (f *fakeSubmitter) Endpoint() string { return "http://review.test" }

func newTestModel(t *testing.T, s Submitter) Model {
	t.Helper()
	m := New(context.Background(), Options{Submitter: s, Clipboard: func(string) error { return nil }})
	return update(t, m, tuitest.WindowSize(100, 40))
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func success(content string) *review.Outcome {
	return &review.Outcome{
		RequestID: "01TEST",
		Result:    review.ParseResult(content),
		Raw:       content,
	}
}

func TestModel_InitialState(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	assert.Equal(t, StateIdle, m.State())
	assert.Nil(t, m.Outcome())
	assert.Empty(t, m.Err())

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Code Review")
	assert.Contains(t, view, "endpoint: http://review.test")
}

func TestModel_BlankInputFailsWithoutRequest(t *testing.T) {
	fake := &fakeSubmitter{}
	m := newTestModel(t, fake)
	m = update(t, m, tuitest.Type("   "))

	m, cmd := updateCmd(t, m, tuitest.Ctrl('s'))

	assert.Nil(t, cmd)
	assert.Equal(t, StateFailure, m.State())
	assert.Equal(t, "please enter code to review", m.Err())
	assert.Empty(t, fake.calls)
	assert.Contains(t, tuitest.StripANSI(m.View()), "please enter code to review")
}

func TestModel_SubmitSuccessRendersResult(t *testing.T) {
	fake := &fakeSubmitter{}
	m := newTestModel(t, fake)
	m = update(t, m, tuitest.Type("x := 1"))

	m, cmd := updateCmd(t, m, tuitest.Ctrl('s'))
	require.NotNil(t, cmd)
	assert.Equal(t, StateSubmitting, m.State())
	assert.Contains(t, tuitest.StripANSI(m.View()), "Analyzing...")

	m = update(t, m, submitDoneMsg{seq: m.seq, outcome: success(`{"content":"Looks good"}`)})

	assert.Equal(t, StateSuccess, m.State())
	assert.Empty(t, m.Err())
	require.NotNil(t, m.Outcome())
	assert.Equal(t, "Looks good", m.Outcome().Result.Content)

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Looks good")
	assert.NotContains(t, view, "Analyzing...")
}

func TestModel_SubmitFailureShowsStatus(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})
	m = update(t, m, tuitest.Type("x := 1"))
	m = update(t, m, tuitest.Ctrl('s'))

	m = update(t, m, submitDoneMsg{seq: m.seq, err: &review.StatusError{Code: 500, Body: "boom"}})

	assert.Equal(t, StateFailure, m.State())
	assert.Contains(t, m.Err(), "500")
	assert.Nil(t, m.Outcome())

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "API error: 500")
}

func TestModel_SubmitIgnoredWhileInFlight(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})
	m = update(t, m, tuitest.Type("x := 1"))
	m = update(t, m, tuitest.Ctrl('s'))
	seq := m.seq

	m, cmd := updateCmd(t, m, tuitest.Ctrl('s'))

	assert.Nil(t, cmd)
	assert.Equal(t, seq, m.seq)
	assert.Equal(t, StateSubmitting, m.State())
}

func TestModel_StaleResultsIgnored(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})
	m = update(t, m, tuitest.Type("x := 1"))
	m = update(t, m, tuitest.Ctrl('s'))

	m = update(t, m, submitDoneMsg{seq: m.seq - 1, outcome: success("old")})
	assert.Equal(t, StateSubmitting, m.State())

	m = update(t, m, progressMsg{seq: m.seq - 1, received: 10})
	assert.Equal(t, 0, m.received)
}

func TestModel_NewSubmissionClearsPreviousResult(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})
	m = update(t, m, tuitest.Type("x := 1"))
	m = update(t, m, tuitest.Ctrl('s'))
	m = update(t, m, submitDoneMsg{seq: m.seq, err: errors.New("boom")})
	require.Equal(t, StateFailure, m.State())

	m = update(t, m, tuitest.Ctrl('s'))

	assert.Equal(t, StateSubmitting, m.State())
	assert.Empty(t, m.Err())
	assert.Nil(t, m.Outcome())
	assert.NotContains(t, tuitest.StripANSI(m.View()), "boom")
}

func TestModel_ProgressUpdatesStatus(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})
	m = update(t, m, tuitest.Type("x := 1"))
	m = update(t, m, tuitest.Ctrl('s'))

	ch := make(chan int)
	m, cmd := updateCmd(t, m, progressMsg{seq: m.seq, received: 2048, ch: ch})

	assert.NotNil(t, cmd)
	assert.Equal(t, 2048, m.received)
	assert.Contains(t, tuitest.StripANSI(m.View()), "2.0 kB received")
}

func TestModel_DebugPanelToggle(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})
	assert.NotContains(t, tuitest.StripANSI(m.View()), "Raw response")

	m = update(t, m, tuitest.Ctrl('d'))
	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Raw response")
	assert.Contains(t, view, "(no response yet)")

	m = update(t, m, tuitest.Type("x := 1"))
	m = update(t, m, tuitest.Ctrl('s'))
	m = update(t, m, submitDoneMsg{seq: m.seq, outcome: success(`{"content":"Looks good"}`)})
	view = tuitest.StripANSI(m.View())
	assert.Contains(t, view, `"content": "Looks good"`)

	m = update(t, m, tuitest.Ctrl('d'))
	assert.NotContains(t, tuitest.StripANSI(m.View()), "Raw response")
}

func TestModel_CopyResult(t *testing.T) {
	var copied string
	m := New(context.Background(), Options{
		Submitter: &fakeSubmitter{},
		Clipboard: func(s string) error {
			copied = s
			return nil
		},
	})

	_, cmd := updateCmd(t, m, tuitest.Ctrl('y'))
	assert.Nil(t, cmd, "nothing to copy before a result exists")

	m = update(t, m, tuitest.Type("x := 1"))
	m = update(t, m, tuitest.Ctrl('s'))
	m = update(t, m, submitDoneMsg{seq: m.seq, outcome: success(`{"content":"Looks good"}`)})

	m, cmd = updateCmd(t, m, tuitest.Ctrl('y'))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, "Looks good", copied)

	m = update(t, m, msg)
	assert.Contains(t, tuitest.StripANSI(m.View()), "copied to clipboard")
}

func TestModel_CopyFailure(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})
	m = update(t, m, copiedMsg{err: errors.New("no clipboard")})
	assert.Contains(t, tuitest.StripANSI(m.View()), "copy failed: no clipboard")
}

func TestModel_SwitchFocus(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})
	assert.Equal(t, focusInput, m.focus)

	m = update(t, m, tuitest.KeyTab())
	assert.Equal(t, focusResult, m.focus)
	assert.False(t, m.input.Focused())

	m = update(t, m, tuitest.KeyTab())
	assert.Equal(t, focusInput, m.focus)
	assert.True(t, m.input.Focused())
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	m, cmd := updateCmd(t, m, tuitest.KeyEsc())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestSubmitCmd(t *testing.T) {
	fake := &fakeSubmitter{outcome: success("ok")}
	progress := make(chan int, 4)

	msg := submitCmd(context.Background(), fake, "code", 7, progress)()

	done, ok := msg.(submitDoneMsg)
	require.True(t, ok)
	assert.Equal(t, 7, done.seq)
	assert.NoError(t, done.err)
	assert.Equal(t, "ok", done.outcome.Result.Content)
	assert.Equal(t, []string{"code"}, fake.calls)

	n, open := <-progress
	assert.True(t, open)
	assert.Equal(t, 42, n)
	_, open = <-progress
	assert.False(t, open, "progress channel is closed when the submission ends")
}

type blockingSubmitter struct{ started chan struct{} }

func (b *blockingSubmitter) SubmitFunc(ctx context.Context, _ string, _ reviewapi.ProgressFunc) (*review.Outcome, error) {
	close(b.started)
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *blockingSubmitter) Endpoint() string { return "http://review.test" }

func TestSubmitCmd_CancelledContextAbortsSubmission(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	blocking := &blockingSubmitter{started: make(chan struct{})}

	result := make(chan tea.Msg, 1)
	go func() {
		result <- submitCmd(ctx, blocking, "code", 1, make(chan int, 1))()
	}()

	<-blocking.started
	cancel()

	done, ok := (<-result).(submitDoneMsg)
	require.True(t, ok)
	assert.ErrorIs(t, done.err, context.Canceled)
	assert.Nil(t, done.outcome)
}

func TestWaitForProgress_ClosedChannel(t *testing.T) {
	ch := make(chan int)
	close(ch)
	assert.Nil(t, waitForProgress(1, ch)())
}

func TestTailLines(t *testing.T) {
	assert.Equal(t, "c\nd", tailLines("a\nb\nc\nd\n", 2))
	assert.Equal(t, "a", tailLines("a", 5))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "failure", StateFailure.String())
}
