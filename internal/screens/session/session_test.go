package session

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/surfmath/internal/linsys"
	"github.com/abhisek/surfmath/internal/problemgen"
	"github.com/abhisek/surfmath/internal/quiz"
	"github.com/abhisek/surfmath/internal/router"
	"github.com/abhisek/surfmath/internal/screens/summary"
	"github.com/abhisek/surfmath/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessionEvents []store.SessionEventData
	answerEvents  []store.AnswerEventData
}

func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return nil
}
func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.answerEvents = append(m.answerEvents, data)
	return nil
}
func (m *mockEventRepo) QueryLLMEvents(_ context.Context, _ store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) GetLLMEvent(_ context.Context, _ int) (*store.LLMRequestEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByPurpose(_ context.Context) ([]store.PurposeUsage, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByModel(_ context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}
func (m *mockEventRepo) RecentSessions(_ context.Context, _ int) ([]store.SessionSummary, error) {
	return nil, nil
}
func (m *mockEventRepo) SessionAnswers(_ context.Context, _ string) ([]store.AnswerEvent, error) {
	return nil, nil
}

func (m *mockEventRepo) lastAction() string {
	if len(m.sessionEvents) == 0 {
		return ""
	}
	return m.sessionEvents[len(m.sessionEvents)-1].Action
}

type stubExplainer struct{}

func (stubExplainer) Explain(context.Context, *problemgen.Question) (string, error) {
	return "Eliminate x first.", nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s *SessionScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func testSessionScreen(total int) (*SessionScreen, *mockEventRepo) {
	repo := &mockEventRepo{}
	provider := quiz.NewGuardedProvider(problemgen.NewLocalGenerator(42), stubExplainer{}, 1, nil)
	cfg := quiz.Config{TotalQuestions: total, CorrectBonus: 10, MaxQuestionAttempts: 1}
	engine, err := quiz.NewEngine(cfg, provider, quiz.WithEventRepo(repo))
	if err != nil {
		panic(err)
	}
	return New(engine), repo
}

func busy(st quiz.State) bool {
	if st.Phase == quiz.PhaseLoading {
		return true
	}
	return st.Phase == quiz.PhaseFeedback && st.Feedback != nil && st.Feedback.ExplanationPending
}

// step runs cmd and feeds engine results back into the screen. Other
// messages (spinner and cursor ticks) are dropped.
func step(s *SessionScreen, cmd tea.Cmd) tea.Cmd {
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var next []tea.Cmd
		for _, c := range msg {
			if c != nil {
				next = append(next, step(s, c))
			}
		}
		return tea.Batch(next...)
	case eventMsg:
		_, next := s.Update(msg)
		return next
	}
	return nil
}

// settle runs commands until the engine is no longer waiting on a request.
func settle(t *testing.T, s *SessionScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	for i := 0; cmd != nil && busy(s.engine.State()); i++ {
		if i > 20 {
			t.Fatal("engine did not settle")
		}
		cmd = step(s, cmd)
	}
	return cmd
}

func started(t *testing.T, total int) (*SessionScreen, *mockEventRepo) {
	t.Helper()
	s, repo := testSessionScreen(total)
	settle(t, s, s.Init())
	if got := s.engine.State().Phase; got != quiz.PhasePlaying {
		t.Fatalf("phase after init = %s, want playing", got)
	}
	return s, repo
}

func typeSolution(s *SessionScreen) {
	sol := s.engine.State().Question.Solution()
	typeText(s, linsys.FormatNumber(sol.X))
	s.Update(specialKey(tea.KeyTab))
	typeText(s, linsys.FormatNumber(sol.Y))
}

func TestInitStartsSession(t *testing.T) {
	s, repo := started(t, 3)

	st := s.engine.State()
	if st.QuestionIndex != 1 || st.Question == nil {
		t.Fatalf("expected question 1, got index %d", st.QuestionIndex)
	}
	if repo.lastAction() != store.SessionActionStart {
		t.Errorf("expected start event, got %q", repo.lastAction())
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Wave 1 of 3") {
		t.Error("expected progress line in question view")
	}
	if !strings.Contains(view, st.Question.System.Eq1.String()) {
		t.Error("expected first equation in question view")
	}
}

func TestLoadingViewBeforeQuestion(t *testing.T) {
	s, _ := testSessionScreen(3)
	s.Init()
	if s.engine.State().Phase != quiz.PhaseLoading {
		t.Fatalf("expected loading, got %s", s.engine.State().Phase)
	}
	if !strings.Contains(s.View(100, 30), "Waiting for the next set") {
		t.Error("expected loading message")
	}
}

func TestCorrectAnswer(t *testing.T) {
	s, repo := started(t, 3)

	typeSolution(s)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("a correct answer should not request an explanation")
	}

	st := s.engine.State()
	if st.Phase != quiz.PhaseFeedback || !st.Feedback.Correct {
		t.Fatalf("expected correct feedback, got %s", st.Phase)
	}
	if st.Score != 10 {
		t.Errorf("score = %d, want 10", st.Score)
	}
	if len(repo.answerEvents) != 1 || !repo.answerEvents[0].Correct {
		t.Errorf("expected one correct answer event, got %+v", repo.answerEvents)
	}
	if !strings.Contains(s.View(100, 30), "Radical!") {
		t.Error("expected success message")
	}
	if s.Status().Score != 10 {
		t.Errorf("header score = %d, want 10", s.Status().Score)
	}
}

func TestEnterInXMovesToY(t *testing.T) {
	s, _ := started(t, 3)

	typeText(s, "4")
	s.Update(specialKey(tea.KeyEnter))

	if s.focus != inputY {
		t.Fatal("enter with y empty should move focus to y")
	}
	if s.engine.State().Phase != quiz.PhasePlaying {
		t.Error("nothing should be submitted yet")
	}
}

func TestNumericInputRejectsLetters(t *testing.T) {
	s, _ := started(t, 3)

	typeText(s, "a-2.5b")
	if got := s.inputs[inputX].Value(); got != "-2.5" {
		t.Errorf("x input = %q, want %q", got, "-2.5")
	}
}

func TestWrongAnswerShowsExplanation(t *testing.T) {
	s, repo := started(t, 3)

	typeText(s, "0")
	s.Update(specialKey(tea.KeyTab))
	typeText(s, "0")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("a wrong answer should request an explanation")
	}
	if !strings.Contains(s.View(100, 30), "Working out the solution") {
		t.Error("expected pending explanation message")
	}

	settle(t, s, cmd)

	fb := s.engine.State().Feedback
	if fb.Correct || fb.Explanation != "Eliminate x first." {
		t.Fatalf("unexpected feedback %+v", fb)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Wipeout!") || !strings.Contains(view, "Eliminate x first.") {
		t.Error("expected wipeout message with explanation")
	}
	if s.engine.State().Score != 0 {
		t.Errorf("score = %d, want 0", s.engine.State().Score)
	}
	if len(repo.answerEvents) != 1 || repo.answerEvents[0].Correct {
		t.Errorf("expected one wrong answer event, got %+v", repo.answerEvents)
	}
}

func TestNextQuestionDropsLateExplanation(t *testing.T) {
	s, _ := started(t, 3)

	typeText(s, "0")
	s.Update(specialKey(tea.KeyTab))
	typeText(s, "0")
	_, explain := s.Update(specialKey(tea.KeyEnter))

	// Move on before the explanation arrives.
	_, cmd := s.Update(keyPress(' '))
	settle(t, s, cmd)

	before := s.engine.State()
	if before.Phase != quiz.PhasePlaying || before.QuestionIndex != 2 {
		t.Fatalf("expected question 2 live, got %s #%d", before.Phase, before.QuestionIndex)
	}

	s.Update(explain())

	after := s.engine.State()
	if after.Phase != quiz.PhasePlaying || after.Feedback != nil || after.Token != before.Token {
		t.Errorf("late explanation changed the session: %+v", after)
	}
}

func TestInputsResetForNextQuestion(t *testing.T) {
	s, _ := started(t, 3)

	typeSolution(s)
	s.Update(specialKey(tea.KeyEnter))
	_, cmd := s.Update(keyPress(' '))
	settle(t, s, cmd)

	if s.inputs[inputX].Value() != "" || s.inputs[inputY].Value() != "" {
		t.Error("inputs should be cleared for the next question")
	}
	if s.focus != inputX {
		t.Error("focus should return to x")
	}
}

func TestLastAnswerShowsSummary(t *testing.T) {
	s, repo := started(t, 1)

	typeSolution(s)
	s.Update(specialKey(tea.KeyEnter))
	_, cmd := s.Update(keyPress(' '))
	if cmd == nil {
		t.Fatal("expected a command after the last question")
	}

	raw := cmd()
	msg, ok := raw.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", raw)
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}
	if s.engine.State().Phase != quiz.PhaseEnd {
		t.Errorf("phase = %s, want end", s.engine.State().Phase)
	}
	if repo.lastAction() != store.SessionActionEnd {
		t.Errorf("expected end event, got %q", repo.lastAction())
	}
}

func TestQuitConfirm(t *testing.T) {
	s, repo := started(t, 3)

	s.Update(specialKey(tea.KeyEscape))
	if !s.confirmQuit {
		t.Fatal("esc should ask for confirmation")
	}
	if !strings.Contains(s.View(100, 30), "Paddle in early?") {
		t.Error("expected quit dialog")
	}

	s.Update(keyPress('n'))
	if s.confirmQuit {
		t.Fatal("n should dismiss the dialog")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command on confirm")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if repo.lastAction() != store.SessionActionQuit {
		t.Errorf("expected quit event, got %q", repo.lastAction())
	}
}

func TestKeyHints(t *testing.T) {
	s, _ := started(t, 3)

	if hints := s.KeyHints(); len(hints) != 3 || hints[0].Key != "Tab" {
		t.Errorf("unexpected playing hints %+v", hints)
	}

	typeSolution(s)
	s.Update(specialKey(tea.KeyEnter))
	if hints := s.KeyHints(); len(hints) != 2 || hints[0].Key != "any key" {
		t.Errorf("unexpected feedback hints %+v", hints)
	}

	s.Update(specialKey(tea.KeyEscape))
	if hints := s.KeyHints(); hints[0].Key != "Y" {
		t.Errorf("unexpected quit hints %+v", hints)
	}
}
