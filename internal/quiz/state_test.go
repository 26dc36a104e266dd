package quiz

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/surfmath/internal/linsys"
	"github.com/abhisek/surfmath/internal/problemgen"
)

var (
	correctAnswer = linsys.Answer{X: 5, Y: 7}
	wrongAnswer   = linsys.Answer{X: 5, Y: 6.999}
)

// loaded drives a fresh state to PhasePlaying on question 1.
func loaded(t *testing.T, cfg Config) State {
	t.Helper()
	s, req := NewState(cfg).Apply(StartGame{})
	require.NotNil(t, req)
	s, _ = s.Apply(QuestionReady{Token: req.Token, Question: problemgen.FallbackQuestion()})
	require.Equal(t, PhasePlaying, s.Phase)
	return s
}

func TestStartGame_ResetsSession(t *testing.T) {
	s, req := NewState(DefaultConfig()).Apply(StartGame{})

	assert.Equal(t, PhaseLoading, s.Phase)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 1, s.QuestionIndex)
	require.NotNil(t, req)
	assert.Equal(t, RequestQuestion, req.Kind)
	assert.Equal(t, s.Token, req.Token)
}

func TestStartGame_FromEveryPhase(t *testing.T) {
	playing := loaded(t, DefaultConfig())
	feedback, _ := playing.Apply(SubmitAnswer{Answer: correctAnswer})
	cfg := DefaultConfig()
	cfg.TotalQuestions = 1
	end, _ := loaded(t, cfg).Apply(SubmitAnswer{Answer: correctAnswer})
	end, _ = end.Apply(NextQuestion{})
	require.Equal(t, PhaseEnd, end.Phase)

	for _, s := range []State{NewState(DefaultConfig()), playing, feedback, end} {
		t.Run(s.Phase.String(), func(t *testing.T) {
			next, req := s.Apply(StartGame{})
			assert.Equal(t, PhaseLoading, next.Phase)
			assert.Equal(t, 0, next.Score)
			assert.Equal(t, 0, next.CorrectAnswers)
			assert.Equal(t, 1, next.QuestionIndex)
			assert.Nil(t, next.Question)
			assert.Nil(t, next.Feedback)
			assert.Empty(t, next.Asked)
			assert.Greater(t, next.Token, s.Token)
			assert.NotNil(t, req)
		})
	}
}

func TestQuestionReady_EntersPlaying(t *testing.T) {
	s := loaded(t, DefaultConfig())

	assert.NotNil(t, s.Question)
	assert.Nil(t, s.Feedback)
	assert.Equal(t, []string{problemgen.FallbackQuestion().Text}, s.Asked)
}

func TestQuestionFailed_ReturnsToStart(t *testing.T) {
	s, req := NewState(DefaultConfig()).Apply(StartGame{})
	boom := errors.New("no network")

	s, next := s.Apply(QuestionFailed{Token: req.Token, Err: boom})

	assert.Nil(t, next)
	assert.Equal(t, PhaseStart, s.Phase)
	assert.ErrorIs(t, s.LastError, boom)

	s, req = s.Apply(StartGame{})
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.NotNil(t, req)
}

func TestSubmitAnswer_Correct(t *testing.T) {
	s := loaded(t, DefaultConfig())

	s, req := s.Apply(SubmitAnswer{Answer: correctAnswer})

	assert.Nil(t, req, "correct answers need no explanation")
	assert.Equal(t, PhaseFeedback, s.Phase)
	assert.Equal(t, 10, s.Score)
	assert.Equal(t, 1, s.CorrectAnswers)
	require.NotNil(t, s.Feedback)
	assert.True(t, s.Feedback.Correct)
	assert.False(t, s.Feedback.ExplanationPending)
	assert.Equal(t, correctAnswer, s.Feedback.Solution)
}

func TestSubmitAnswer_WrongRequestsExplanation(t *testing.T) {
	s := loaded(t, DefaultConfig())
	before := s.Token

	s, req := s.Apply(SubmitAnswer{Answer: wrongAnswer})

	assert.Equal(t, PhaseFeedback, s.Phase)
	assert.Equal(t, 0, s.Score)
	require.NotNil(t, s.Feedback)
	assert.False(t, s.Feedback.Correct)
	assert.True(t, s.Feedback.ExplanationPending)
	require.NotNil(t, req)
	assert.Equal(t, RequestExplanation, req.Kind)
	assert.Greater(t, req.Token, before)
	assert.Same(t, s.Question, req.Question)

	s, _ = s.Apply(ExplanationReady{Token: req.Token, Text: "Add the equations."})
	assert.False(t, s.Feedback.ExplanationPending)
	assert.Equal(t, "Add the equations.", s.Feedback.Explanation)
}

func TestSubmitAnswer_MalformedInputIsIncorrect(t *testing.T) {
	s := loaded(t, DefaultConfig())

	s, _ = s.Apply(SubmitAnswer{Answer: linsys.ParseAnswer("five", "")})

	assert.Equal(t, PhaseFeedback, s.Phase)
	assert.False(t, s.Feedback.Correct)
	assert.True(t, math.IsNaN(s.Feedback.Answer.X))
}

func TestSubmitAnswer_NoLiveQuestionIsNoop(t *testing.T) {
	loading, _ := NewState(DefaultConfig()).Apply(StartGame{})
	feedback, _ := loaded(t, DefaultConfig()).Apply(SubmitAnswer{Answer: wrongAnswer})

	for _, s := range []State{NewState(DefaultConfig()), loading, feedback} {
		t.Run(s.Phase.String(), func(t *testing.T) {
			next, req := s.Apply(SubmitAnswer{Answer: correctAnswer})
			assert.Nil(t, req)
			assert.Equal(t, s.Phase, next.Phase)
			assert.Equal(t, s.Score, next.Score)
			assert.Equal(t, s.Token, next.Token)
		})
	}
}

func TestNextQuestion_NotBlockedByPendingExplanation(t *testing.T) {
	s := loaded(t, DefaultConfig())
	s, explain := s.Apply(SubmitAnswer{Answer: wrongAnswer})
	require.NotNil(t, explain)

	s, req := s.Apply(NextQuestion{})
	require.NotNil(t, req)
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.Equal(t, 2, s.QuestionIndex)
	assert.Nil(t, s.Feedback)

	// The late explanation belongs to the previous turn.
	after, _ := s.Apply(ExplanationReady{Token: explain.Token, Text: "late"})
	assert.Equal(t, s, after)
}

func TestNextQuestion_OnlyFromFeedback(t *testing.T) {
	s := loaded(t, DefaultConfig())
	next, req := s.Apply(NextQuestion{})
	assert.Nil(t, req)
	assert.Equal(t, s, next)
}

func TestStaleQuestionAfterRestart(t *testing.T) {
	s := loaded(t, DefaultConfig())
	s, _ = s.Apply(SubmitAnswer{Answer: correctAnswer})
	s, stale := s.Apply(NextQuestion{})
	require.NotNil(t, stale)
	require.Equal(t, 10, s.Score)

	s, fresh := s.Apply(StartGame{})
	require.NotNil(t, fresh)

	q := problemgen.FallbackQuestion()
	q.Text = "phantom"
	after, req := s.Apply(QuestionReady{Token: stale.Token, Question: q})

	assert.Nil(t, req)
	assert.Equal(t, PhaseLoading, after.Phase)
	assert.Nil(t, after.Question)
	assert.Equal(t, 0, after.Score)
	assert.Equal(t, 1, after.QuestionIndex)
	assert.Empty(t, after.Asked)

	after, _ = after.Apply(QuestionFailed{Token: stale.Token, Err: errors.New("late")})
	assert.Equal(t, PhaseLoading, after.Phase)

	after, _ = after.Apply(QuestionReady{Token: fresh.Token, Question: problemgen.FallbackQuestion()})
	assert.Equal(t, PhasePlaying, after.Phase)
}

func TestFullSession_AllCorrect(t *testing.T) {
	s, req := NewState(DefaultConfig()).Apply(StartGame{})

	for i := 1; i <= 15; i++ {
		require.NotNil(t, req, "question %d", i)
		require.Equal(t, i, s.QuestionIndex)
		s, _ = s.Apply(QuestionReady{Token: req.Token, Question: problemgen.FallbackQuestion()})
		s, _ = s.Apply(SubmitAnswer{Answer: correctAnswer})
		s, req = s.Apply(NextQuestion{})
	}

	assert.Nil(t, req)
	assert.Equal(t, PhaseEnd, s.Phase)
	assert.Equal(t, 150, s.Score)
	assert.Equal(t, 15, s.QuestionIndex)
	assert.Equal(t, 15, s.Answered())
	assert.Nil(t, s.Question)
}

func TestScoreMonotonic(t *testing.T) {
	answers := []linsys.Answer{correctAnswer, wrongAnswer, correctAnswer, {X: math.NaN()}, correctAnswer}
	cfg := DefaultConfig()
	cfg.TotalQuestions = len(answers)

	s, req := NewState(cfg).Apply(StartGame{})
	prev := s.Score
	for i, ans := range answers {
		s, _ = s.Apply(QuestionReady{Token: req.Token, Question: problemgen.FallbackQuestion()})
		s, _ = s.Apply(SubmitAnswer{Answer: ans})

		want := prev
		if i%2 == 0 {
			want += cfg.CorrectBonus
		}
		assert.Equal(t, want, s.Score, "answer %d", i)
		assert.GreaterOrEqual(t, s.Score, prev)
		prev = s.Score

		s, req = s.Apply(NextQuestion{})
		assert.LessOrEqual(t, s.QuestionIndex, cfg.TotalQuestions)
	}
	assert.Equal(t, PhaseEnd, s.Phase)
	assert.Equal(t, 30, s.Score)
}

func TestEnd_ClearsPendingExplanation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalQuestions = 1
	s := loaded(t, cfg)
	s, _ = s.Apply(SubmitAnswer{Answer: wrongAnswer})
	s, req := s.Apply(NextQuestion{})

	assert.Nil(t, req)
	assert.Equal(t, PhaseEnd, s.Phase)
	require.NotNil(t, s.Feedback)
	assert.False(t, s.Feedback.ExplanationPending)
}

func TestApply_DoesNotMutateReceiver(t *testing.T) {
	s := loaded(t, DefaultConfig())
	s, req := s.Apply(SubmitAnswer{Answer: wrongAnswer})
	fb := s.Feedback

	_, _ = s.Apply(ExplanationReady{Token: req.Token, Text: "steps"})

	assert.True(t, fb.ExplanationPending)
	assert.Empty(t, fb.Explanation)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero questions", func(c *Config) { c.TotalQuestions = 0 }, true},
		{"negative bonus", func(c *Config) { c.CorrectBonus = -1 }, true},
		{"zero attempts", func(c *Config) { c.MaxQuestionAttempts = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildSummary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalQuestions = 2
	s := loaded(t, cfg)
	s, _ = s.Apply(SubmitAnswer{Answer: correctAnswer})
	s, req := s.Apply(NextQuestion{})
	s, _ = s.Apply(QuestionReady{Token: req.Token, Question: problemgen.FallbackQuestion()})
	s, _ = s.Apply(SubmitAnswer{Answer: wrongAnswer})
	s, _ = s.Apply(NextQuestion{})

	sum := BuildSummary(s)
	assert.Equal(t, Summary{Score: 10, MaxScore: 20, Correct: 1, Answered: 2, Total: 2, Accuracy: 0.5}, sum)
	assert.Equal(t, "Solid rides. Keep paddling.", sum.Rating())
}
