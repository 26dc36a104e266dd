package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/surfmath/internal/linsys"
	"github.com/abhisek/surfmath/internal/problemgen"
	"github.com/abhisek/surfmath/internal/store"
)

// Engine owns the session State, fulfills its requests through a
// QuestionProvider and writes session and answer events to the log.
type Engine struct {
	provider QuestionProvider
	repo     store.EventRepo
	log      *zap.Logger

	mu        sync.Mutex
	state     State
	sessionID string
	startedAt time.Time
	shownAt   time.Time
	quit      bool
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithEventRepo records session and answer events to repo.
func WithEventRepo(repo store.EventRepo) Option {
	return func(e *Engine) { e.repo = repo }
}

// WithLogger sets the engine's logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine creates an engine in PhaseStart. cfg must pass Validate.
func NewEngine(cfg Config, provider QuestionProvider, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		provider: provider,
		log:      zap.NewNop(),
		state:    NewState(cfg),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// State returns the current session state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SessionID returns the id of the current session, or "" before the first
// StartGame.
func (e *Engine) SessionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionID
}

// Dispatch applies ev to the session and returns the request to fulfill,
// if any.
func (e *Engine) Dispatch(ctx context.Context, ev Event) *Request {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.state
	next, req := prev.Apply(ev)
	e.state = next
	e.observe(ctx, prev, next, ev)
	return req
}

// observe writes the events implied by one transition. Called with mu held.
func (e *Engine) observe(ctx context.Context, prev, next State, ev Event) {
	if next.Token == prev.Token && next.Phase == prev.Phase {
		return
	}

	switch ev := ev.(type) {
	case StartGame:
		if inProgress(prev) && !e.quit {
			e.recordSession(ctx, prev, store.SessionActionQuit)
		}
		e.quit = false
		e.sessionID = uuid.NewString()
		e.startedAt = e.now()
		e.recordSession(ctx, next, store.SessionActionStart)
		e.log.Info("session started", zap.String("session_id", e.sessionID))

	case QuestionReady:
		e.shownAt = e.now()
		e.log.Debug("question served",
			zap.Int("index", next.QuestionIndex),
			zap.String("source", string(ev.Question.Source)))

	case QuestionFailed:
		e.log.Warn("question request failed", zap.Error(ev.Err))

	case SubmitAnswer:
		e.recordAnswer(ctx, next, ev.Answer)

	case NextQuestion:
		if next.Phase == PhaseEnd {
			e.recordSession(ctx, next, store.SessionActionEnd)
			e.log.Info("session finished",
				zap.String("session_id", e.sessionID),
				zap.Int("score", next.Score))
		}
	}
}

func inProgress(s State) bool {
	return s.Phase != PhaseStart && s.Phase != PhaseEnd
}

// Quit records that the learner left a session before its end.
func (e *Engine) Quit(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if inProgress(e.state) && !e.quit {
		e.recordSession(ctx, e.state, store.SessionActionQuit)
		e.quit = true
	}
}

func (e *Engine) recordSession(ctx context.Context, s State, action string) {
	if e.repo == nil {
		return
	}
	data := store.SessionEventData{
		SessionID:       e.sessionID,
		Action:          action,
		QuestionsServed: s.Answered(),
		CorrectAnswers:  s.CorrectAnswers,
		Score:           s.Score,
	}
	if action != store.SessionActionStart {
		data.DurationSecs = int(e.now().Sub(e.startedAt).Seconds())
	}
	if err := e.repo.AppendSessionEvent(ctx, data); err != nil {
		e.log.Warn("failed to record session event", zap.String("action", action), zap.Error(err))
	}
}

func (e *Engine) recordAnswer(ctx context.Context, s State, ans linsys.Answer) {
	if e.repo == nil || s.Question == nil || s.Feedback == nil {
		return
	}
	q := s.Question
	err := e.repo.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     e.sessionID,
		QuestionIndex: s.QuestionIndex,
		QuestionText:  q.Text,
		System:        q.System.String(),
		Source:        string(q.Source),
		CorrectAnswer: s.Feedback.Solution.String(),
		LearnerAnswer: ans.String(),
		Correct:       s.Feedback.Correct,
		TimeMs:        e.now().Sub(e.shownAt).Milliseconds(),
	})
	if err != nil {
		e.log.Warn("failed to record answer event", zap.Error(err))
	}
}

// Fulfill performs req and returns the event that carries its result.
// It does not touch the session, so it can run on any goroutine.
func (e *Engine) Fulfill(ctx context.Context, req *Request) Event {
	switch req.Kind {
	case RequestExplanation:
		text, err := e.provider.RequestExplanation(ctx, req.Question)
		if err != nil || text == "" {
			e.log.Warn("serving fallback explanation", zap.Error(err))
			text = problemgen.FallbackExplanation
		}
		return ExplanationReady{Token: req.Token, Text: text}
	default:
		q, err := e.provider.RequestQuestion(ctx, req.Asked)
		if err != nil {
			return QuestionFailed{Token: req.Token, Err: err}
		}
		return QuestionReady{Token: req.Token, Question: q}
	}
}

// Player drives Run.
type Player interface {
	// Answer is called once per question in PhasePlaying. Returning
	// ErrQuit leaves the session.
	Answer(ctx context.Context, s State) (linsys.Answer, error)

	// Show is called after every transition.
	Show(s State)
}

// Run plays one full session synchronously and returns the final state.
// Requests are fulfilled inline on the calling goroutine.
func (e *Engine) Run(ctx context.Context, p Player) (State, error) {
	req := e.Dispatch(ctx, StartGame{})
	p.Show(e.State())

	for {
		for req != nil {
			ev := e.Fulfill(ctx, req)
			req = e.Dispatch(ctx, ev)
			p.Show(e.State())
		}

		s := e.State()
		switch s.Phase {
		case PhaseEnd:
			return s, nil
		case PhaseStart:
			if s.LastError != nil {
				return s, s.LastError
			}
			return s, errors.New("quiz: session did not start")
		case PhasePlaying:
			ans, err := p.Answer(ctx, s)
			if err != nil {
				e.Quit(ctx)
				return e.State(), err
			}
			req = e.Dispatch(ctx, SubmitAnswer{Answer: ans})
		case PhaseFeedback:
			req = e.Dispatch(ctx, NextQuestion{})
		default:
			return s, fmt.Errorf("quiz: stuck in %s", s.Phase)
		}
		p.Show(e.State())
	}
}
