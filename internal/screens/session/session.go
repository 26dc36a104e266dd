package session

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/surfmath/internal/linsys"
	"github.com/abhisek/surfmath/internal/quiz"
	"github.com/abhisek/surfmath/internal/router"
	"github.com/abhisek/surfmath/internal/screen"
	"github.com/abhisek/surfmath/internal/screens/summary"
	"github.com/abhisek/surfmath/internal/ui/components"
	"github.com/abhisek/surfmath/internal/ui/layout"
	"github.com/abhisek/surfmath/internal/ui/theme"
)

const (
	inputX = iota
	inputY
)

// SessionScreen plays one quiz session on top of a quiz.Engine. Provider
// calls run as tea.Cmds and come back as eventMsg.
type SessionScreen struct {
	engine *quiz.Engine
	ctx    context.Context
	cancel context.CancelFunc

	inputs  [2]components.NumberInput
	focus   int
	spinner spinner.Model

	// shown is the QuestionIndex the inputs were last reset for.
	shown int

	confirmQuit bool
	done        bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)

// New creates a SessionScreen. A new session starts when the screen is
// initialized, abandoning whatever the engine was doing.
func New(engine *quiz.Engine) *SessionScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionScreen{
		engine: engine,
		ctx:    ctx,
		cancel: cancel,
		inputs: [2]components.NumberInput{
			components.NewNumberInput("x", 12),
			components.NewNumberInput("y", 12),
		},
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
		),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(
		s.spinner.Tick,
		s.dispatch(quiz.StartGame{}),
	)
}

func (s *SessionScreen) Title() string {
	return "Session"
}

func (s *SessionScreen) Status() layout.HeaderStatus {
	st := s.engine.State()
	return layout.HeaderStatus{
		Score:    st.Score,
		Question: st.QuestionIndex,
		Total:    st.Total(),
	}
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.engine.State().Phase {
	case quiz.PhasePlaying:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Switch x/y"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	case quiz.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next wave"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	st := s.engine.State()
	switch st.Phase {
	case quiz.PhaseLoading:
		return s.renderLoading(width, st)
	case quiz.PhasePlaying:
		return s.renderQuestion(width, st)
	case quiz.PhaseFeedback, quiz.PhaseEnd:
		return s.renderFeedback(width, st)
	}
	if st.LastError != nil {
		return renderError(width, st.LastError.Error())
	}
	return s.renderLoading(width, st)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return s, s.dispatch(msg.Event)

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.engine.State().Phase == quiz.PhasePlaying && !s.confirmQuit {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

// dispatch applies ev and turns the follow-up request, if any, into a
// command. It also resets the answer inputs when a new question goes live.
func (s *SessionScreen) dispatch(ev quiz.Event) tea.Cmd {
	req := s.engine.Dispatch(s.ctx, ev)

	st := s.engine.State()
	if st.Phase == quiz.PhasePlaying && st.QuestionIndex != s.shown {
		s.shown = st.QuestionIndex
		return s.resetInputs()
	}
	if st.Phase == quiz.PhaseEnd && !s.done {
		return s.finish(st)
	}
	if req == nil {
		return nil
	}
	return s.fulfill(req)
}

func (s *SessionScreen) fulfill(req *quiz.Request) tea.Cmd {
	engine, ctx := s.engine, s.ctx
	return func() tea.Msg {
		return eventMsg{Event: engine.Fulfill(ctx, req)}
	}
}

func (s *SessionScreen) resetInputs() tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].Clear()
		s.inputs[i].Blur()
	}
	s.focus = inputX
	return s.inputs[inputX].Focus()
}

// finish hands the final state to the summary screen. Playing again comes
// back here with a fresh screen on the same engine.
func (s *SessionScreen) finish(st quiz.State) tea.Cmd {
	s.done = true
	s.cancel()
	engine := s.engine
	next := summary.New(quiz.BuildSummary(st), func() screen.Screen {
		return New(engine)
	})
	return router.Swap(next)
}

func (s *SessionScreen) quit() tea.Cmd {
	s.engine.Quit(s.ctx)
	s.cancel()
	return router.Back
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.quit()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	st := s.engine.State()

	// Nothing to lose before the first question or after a failure.
	if st.Phase == quiz.PhaseStart {
		return s, s.quit()
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	switch st.Phase {
	case quiz.PhasePlaying:
		switch key {
		case "enter":
			return s.submit()
		case "tab", "shift+tab", "up", "down":
			return s, s.toggleFocus()
		}
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd

	case quiz.PhaseFeedback:
		return s, s.dispatch(quiz.NextQuestion{})
	}
	return s, nil
}

func (s *SessionScreen) toggleFocus() tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = 1 - s.focus
	return s.inputs[s.focus].Focus()
}

// submit sends the typed pair. Enter in the x field moves to y while y is
// still empty, so both can be filled without Tab.
func (s *SessionScreen) submit() (screen.Screen, tea.Cmd) {
	x, y := s.inputs[inputX].Value(), s.inputs[inputY].Value()
	if s.focus == inputX && y == "" {
		return s, s.toggleFocus()
	}

	ans := linsys.ParseAnswer(x, y)
	cmd := s.dispatch(quiz.SubmitAnswer{Answer: ans})

	if fb := s.engine.State().Feedback; fb != nil {
		v := components.Wrong
		if fb.Correct {
			v = components.Right
		}
		s.inputs[inputX].Mark(v)
		s.inputs[inputY].Mark(v)
	}
	return s, cmd
}
