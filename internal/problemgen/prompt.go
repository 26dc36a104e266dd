package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/surfmath/internal/linsys"
)

const systemPrompt = `You write linear algebra practice problems for surfers.

Rules:
- Write one short word problem about surfing, waves, wind, tides, boards or surf trips.
- The problem must be a system of two linear equations in two unknowns, x and y.
- Use integer coefficients. Every coefficient of x and y must be non-zero and between -10 and 10.
- Constant terms must be integers between -50 and 50.
- The system must have exactly one solution, and both x and y must be whole numbers.
- Name what x and y stand for, with units, in variable_x and variable_y.
- The problem text must state enough information to write both equations. Do not give away the answer.
- Use plain text. No LaTeX.
- Do not repeat any problem from the "already asked" list.`

// buildUserMessage constructs the question request from GenerateInput.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder
	b.WriteString("Create a new surf maths problem.\n")
	if cfg.Spot != "" {
		fmt.Fprintf(&b, "Set it at %s.\n", cfg.Spot)
	}
	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))
	return b.String()
}

const explainSystemPrompt = `You are a friendly maths tutor who surfs.
A student answered a system of linear equations incorrectly.
Explain step by step how to solve it, using elimination or substitution.
Keep it short, encouraging and in plain text without LaTeX.
Finish with the final answer as an ordered pair (x, y).`

// buildExplainMessage describes the system the learner missed.
func buildExplainMessage(q *Question) string {
	var b strings.Builder
	if q.Text != "" {
		fmt.Fprintf(&b, "Problem: %s\n\n", q.Text)
	}
	b.WriteString("System:\n")
	writeEquations(&b, q.System)
	if q.XLabel != "" && q.YLabel != "" {
		fmt.Fprintf(&b, "\nx = %s\ny = %s\n", q.XLabel, q.YLabel)
	}
	return b.String()
}

func writeEquations(b *strings.Builder, s linsys.System) {
	fmt.Fprintf(b, "  %s\n  %s\n", s.Eq1, s.Eq2)
}
