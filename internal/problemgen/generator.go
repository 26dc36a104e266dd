package problemgen

import (
	"context"

	"github.com/abhisek/surfmath/internal/linsys"
)

// Generator produces questions.
type Generator interface {
	// Generate returns a question whose system has passed CheckSystem and
	// every configured validator, or an error.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}

// Explainer produces a worked solution for a system the learner got wrong.
type Explainer interface {
	Explain(ctx context.Context, q *Question) (string, error)
}

// FallbackExplanation is shown when no worked solution could be produced.
const FallbackExplanation = "Couldn't fetch a detailed explanation right now. " +
	"Remember: the solution of the system is the point where the two lines cross. " +
	"Try eliminating one variable by adding or subtracting the equations."

// FallbackQuestion returns the built-in question used when generation
// fails. Its system is x + y = 12, 2x - y = 3 with solution (5, 7).
func FallbackQuestion() *Question {
	return &Question{
		Text: "At Supertubos the wind speed (x, in knots) plus the wave height " +
			"(y, in feet) adds up to 12. Twice the wind speed minus the wave " +
			"height comes to 3. How strong is the wind and how big are the waves?",
		System: linsys.System{
			Eq1: linsys.Equation{A: 1, B: 1, C: 12},
			Eq2: linsys.Equation{A: 2, B: -1, C: 3},
		},
		XLabel: "wind speed (knots)",
		YLabel: "wave height (ft)",
		Source: SourceFallback,
	}
}
