// Package quiz implements the quiz session as a pure state machine.
//
// A State moves between phases only through Apply. Work that has to leave
// the process (fetching a question or an explanation) is returned as a
// Request; its result comes back as an Event carrying the request's token.
// The token is bumped on every request and on every restart, so a result
// that arrives after the session moved on is dropped.
package quiz

import (
	"fmt"
	"slices"

	"github.com/abhisek/surfmath/internal/linsys"
	"github.com/abhisek/surfmath/internal/problemgen"
)

// Phase is the current phase of a quiz session.
type Phase int

const (
	PhaseStart    Phase = iota // Waiting for StartGame
	PhaseLoading               // A question request is outstanding
	PhasePlaying               // A question is live and awaits an answer
	PhaseFeedback              // The answer was checked
	PhaseEnd                   // All questions answered
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhaseFeedback:
		return "feedback"
	case PhaseEnd:
		return "end"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Config holds the session rules.
type Config struct {
	TotalQuestions int `mapstructure:"total_questions"`
	CorrectBonus   int `mapstructure:"correct_bonus"`

	// MaxQuestionAttempts is how many times the provider is asked for a
	// valid question before the built-in fallback is served.
	MaxQuestionAttempts int `mapstructure:"max_question_attempts"`
}

// DefaultConfig returns 15 questions worth 10 points each.
func DefaultConfig() Config {
	return Config{
		TotalQuestions:      15,
		CorrectBonus:        10,
		MaxQuestionAttempts: 2,
	}
}

// Validate checks that the rules describe a playable session.
func (c Config) Validate() error {
	if c.TotalQuestions < 1 {
		return fmt.Errorf("quiz.total_questions must be at least 1, got %d", c.TotalQuestions)
	}
	if c.CorrectBonus < 0 {
		return fmt.Errorf("quiz.correct_bonus must not be negative, got %d", c.CorrectBonus)
	}
	if c.MaxQuestionAttempts < 1 {
		return fmt.Errorf("quiz.max_question_attempts must be at least 1, got %d", c.MaxQuestionAttempts)
	}
	return nil
}

// Feedback is the outcome of the last submitted answer.
type Feedback struct {
	Answer   linsys.Answer
	Correct  bool
	Solution linsys.Answer

	// Explanation is empty until ExplanationReady arrives.
	Explanation        string
	ExplanationPending bool
}

// State is one snapshot of a quiz session. Values are never mutated in
// place; Apply returns a new State.
type State struct {
	Phase Phase

	Score int

	// QuestionIndex is 1-based and 0 before the first StartGame.
	QuestionIndex int

	CorrectAnswers int

	// Question is the live question in PhasePlaying and PhaseFeedback.
	Question *problemgen.Question

	// Feedback is set in PhaseFeedback and kept in PhaseEnd.
	Feedback *Feedback

	// Token identifies the newest outstanding request.
	Token uint64

	// LastError is why the last question request failed, if it did.
	LastError error

	// Asked holds the text of every question served this session.
	Asked []string

	Config Config
}

// NewState returns a session waiting in PhaseStart.
func NewState(cfg Config) State {
	return State{Phase: PhaseStart, Config: cfg}
}

// Total is the number of questions in a session.
func (s State) Total() int {
	return s.Config.TotalQuestions
}

// MaxScore is the score for answering every question correctly.
func (s State) MaxScore() int {
	return s.Config.TotalQuestions * s.Config.CorrectBonus
}

// Answered is the number of questions answered so far.
func (s State) Answered() int {
	switch s.Phase {
	case PhaseFeedback, PhaseEnd:
		return s.QuestionIndex
	case PhaseStart:
		return 0
	}
	return s.QuestionIndex - 1
}

// RequestKind says which provider call a Request needs.
type RequestKind int

const (
	RequestQuestion RequestKind = iota
	RequestExplanation
)

func (k RequestKind) String() string {
	if k == RequestExplanation {
		return "explanation"
	}
	return "question"
}

// Request is a provider call the state machine is waiting on.
type Request struct {
	Kind  RequestKind
	Token uint64

	// Asked is set for question requests so the provider can avoid repeats.
	Asked []string

	// Question is set for explanation requests.
	Question *problemgen.Question
}

// Apply returns the state after ev and the request to fulfill, if any.
// Events that do not fit the current phase, and results whose token is
// not the current one, leave the state unchanged.
func (s State) Apply(ev Event) (State, *Request) {
	switch ev := ev.(type) {
	case StartGame:
		return s.start()
	case QuestionReady:
		return s.questionReady(ev), nil
	case QuestionFailed:
		return s.questionFailed(ev), nil
	case SubmitAnswer:
		return s.submit(ev)
	case ExplanationReady:
		return s.explanationReady(ev), nil
	case NextQuestion:
		return s.next()
	}
	return s, nil
}

// start resets the session. It is accepted in every phase so a session
// can be abandoned mid-way; the token bump orphans anything in flight.
func (s State) start() (State, *Request) {
	next := State{
		Phase:         PhaseLoading,
		QuestionIndex: 1,
		Token:         s.Token + 1,
		Config:        s.Config,
	}
	return next, next.questionRequest()
}

func (s State) questionRequest() *Request {
	return &Request{
		Kind:  RequestQuestion,
		Token: s.Token,
		Asked: slices.Clone(s.Asked),
	}
}

func (s State) questionReady(ev QuestionReady) State {
	if s.Phase != PhaseLoading || ev.Token != s.Token || ev.Question == nil {
		return s
	}
	s.Phase = PhasePlaying
	s.Question = ev.Question
	s.Feedback = nil
	s.LastError = nil
	s.Asked = append(slices.Clip(s.Asked), ev.Question.Text)
	return s
}

func (s State) questionFailed(ev QuestionFailed) State {
	if s.Phase != PhaseLoading || ev.Token != s.Token {
		return s
	}
	s.Phase = PhaseStart
	s.Question = nil
	s.LastError = ev.Err
	return s
}

func (s State) submit(ev SubmitAnswer) (State, *Request) {
	if s.Phase != PhasePlaying || s.Question == nil {
		return s, nil
	}

	fb := &Feedback{
		Answer:   ev.Answer,
		Correct:  linsys.CheckAnswer(s.Question.System, ev.Answer),
		Solution: s.Question.Solution(),
	}
	s.Phase = PhaseFeedback
	s.Feedback = fb

	if fb.Correct {
		s.Score += s.Config.CorrectBonus
		s.CorrectAnswers++
		return s, nil
	}

	fb.ExplanationPending = true
	s.Token++
	return s, &Request{
		Kind:     RequestExplanation,
		Token:    s.Token,
		Question: s.Question,
	}
}

func (s State) explanationReady(ev ExplanationReady) State {
	if s.Phase != PhaseFeedback || ev.Token != s.Token ||
		s.Feedback == nil || !s.Feedback.ExplanationPending {
		return s
	}
	fb := *s.Feedback
	fb.Explanation = ev.Text
	fb.ExplanationPending = false
	s.Feedback = &fb
	return s
}

// next never waits for a pending explanation; the token bump drops it.
func (s State) next() (State, *Request) {
	if s.Phase != PhaseFeedback {
		return s, nil
	}
	s.Token++
	s.Question = nil

	if s.QuestionIndex >= s.Config.TotalQuestions {
		s.Phase = PhaseEnd
		if s.Feedback != nil && s.Feedback.ExplanationPending {
			fb := *s.Feedback
			fb.ExplanationPending = false
			s.Feedback = &fb
		}
		return s, nil
	}

	s.Phase = PhaseLoading
	s.QuestionIndex++
	s.Feedback = nil
	return s, s.questionRequest()
}
