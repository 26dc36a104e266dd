package problemgen

import "github.com/abhisek/surfmath/internal/linsys"

// Question is one word problem built on a 2x2 linear system.
type Question struct {
	// Text is the surf-themed story shown to the learner. The equations
	// themselves are rendered separately from System.
	Text string

	System linsys.System

	// XLabel and YLabel name what x and y stand for, e.g. "wind speed (knots)".
	XLabel string
	YLabel string

	// Source records where the question came from.
	Source Source
}

// Solution returns the unique solution of the question's system. Questions
// handed out by this package always have one.
func (q *Question) Solution() linsys.Answer {
	ans, _ := linsys.Solve(q.System)
	return ans
}

// Source identifies which generator produced a question.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceLocal    Source = "local"
	SourceFallback Source = "fallback"
)

// GenerateInput holds the context for generating one question.
type GenerateInput struct {
	// PriorQuestions holds the Text of questions already asked this
	// session, oldest first, so the generator can avoid repeats.
	PriorQuestions []string
}
