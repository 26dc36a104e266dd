package quiz

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/surfmath/internal/problemgen"
)

// QuestionProvider supplies questions and explanations to the engine.
type QuestionProvider interface {
	RequestQuestion(ctx context.Context, asked []string) (*problemgen.Question, error)
	RequestExplanation(ctx context.Context, q *problemgen.Question) (string, error)
}

// GuardedProvider puts every question through problemgen.CheckSystem,
// retries rejected ones and falls back to built-in content, so the
// session always has something to show.
type GuardedProvider struct {
	gen      problemgen.Generator
	explain  problemgen.Explainer
	attempts int
	log      *zap.Logger
}

// NewGuardedProvider wraps gen and explain. attempts below 1 is treated as 1.
func NewGuardedProvider(gen problemgen.Generator, explain problemgen.Explainer, attempts int, log *zap.Logger) *GuardedProvider {
	if attempts < 1 {
		attempts = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GuardedProvider{gen: gen, explain: explain, attempts: attempts, log: log}
}

// RequestQuestion returns a question that passed CheckSystem, or the
// fallback question. It only fails when ctx is done.
func (p *GuardedProvider) RequestQuestion(ctx context.Context, asked []string) (*problemgen.Question, error) {
	q, err := p.fetch(ctx, asked)
	if err == nil {
		return q, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	p.log.Warn("serving fallback question", zap.Error(err))
	return problemgen.FallbackQuestion(), nil
}

func (p *GuardedProvider) fetch(ctx context.Context, asked []string) (*problemgen.Question, error) {
	var lastErr error
	attempt := 0
	for attempt < p.attempts {
		attempt++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		q, err := p.gen.Generate(ctx, problemgen.GenerateInput{PriorQuestions: asked})
		if err == nil && q != nil {
			if err = problemgen.CheckSystem(q.System); err == nil {
				return q, nil
			}
		}
		if err == nil {
			err = errors.New("generator returned no question")
		}
		lastErr = err
		p.log.Warn("discarded generated question",
			zap.Int("attempt", attempt),
			zap.Error(err))

		var verr *problemgen.ValidationError
		if errors.As(err, &verr) && !verr.Retryable {
			break
		}
	}
	return nil, &ProviderUnavailableError{Attempts: attempt, Err: lastErr}
}

// RequestExplanation returns a worked solution for q, or
// problemgen.FallbackExplanation. It never fails.
func (p *GuardedProvider) RequestExplanation(ctx context.Context, q *problemgen.Question) (string, error) {
	text, err := p.explain.Explain(ctx, q)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty explanation")
	}
	if err != nil {
		p.log.Warn("serving fallback explanation",
			zap.Error(&ExplanationUnavailableError{Err: err}))
		return problemgen.FallbackExplanation, nil
	}
	return text, nil
}
