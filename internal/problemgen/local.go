package problemgen

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/abhisek/surfmath/internal/linsys"
)

// quantity is one unknown a local story can ask about.
type quantity struct {
	noun  string // "the wind speed"
	label string // "wind speed (knots)"
	min   int
	max   int
}

type story struct {
	place string
	x, y  quantity
}

var stories = []story{
	{
		place: "Supertubos",
		x:     quantity{"the wind speed", "wind speed (knots)", 4, 20},
		y:     quantity{"the wave height", "wave height (ft)", 2, 12},
	},
	{
		place: "Ericeira",
		x:     quantity{"the price of a board rental", "board rental (euros)", 10, 30},
		y:     quantity{"the price of a wetsuit rental", "wetsuit rental (euros)", 5, 15},
	},
	{
		place: "Nazaré",
		x:     quantity{"the swell period", "swell period (seconds)", 8, 18},
		y:     quantity{"the number of sets per hour", "sets per hour", 3, 12},
	},
	{
		place: "Hossegor",
		x:     quantity{"the number of longboards", "longboards", 2, 15},
		y:     quantity{"the number of shortboards", "shortboards", 2, 15},
	},
	{
		place: "Mundaka",
		x:     quantity{"the paddle time in minutes", "paddle time (minutes)", 3, 15},
		y:     quantity{"the number of waves caught", "waves caught", 1, 10},
	},
	{
		place: "Uluwatu",
		x:     quantity{"the water temperature", "water temperature (°C)", 20, 29},
		y:     quantity{"the tide height", "tide height (dm)", 1, 20},
	},
}

// maxLocalAttempts bounds the search for a system that fits the bounds.
const maxLocalAttempts = 200

// LocalGenerator builds questions without a network. Systems are made by
// choosing an integer solution first and then coefficients around it, so
// every question has a whole-number answer.
type LocalGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLocalGenerator returns a generator seeded with seed. The same seed
// yields the same sequence of questions.
func NewLocalGenerator(seed uint64) *LocalGenerator {
	return &LocalGenerator{rng: rand.New(rand.NewPCG(seed, seed^0x5eed))}
}

func (g *LocalGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for range maxLocalAttempts {
		st := stories[g.rng.IntN(len(stories))]
		x := g.between(st.x.min, st.x.max)
		y := g.between(st.y.min, st.y.max)

		s := linsys.System{
			Eq1: g.equation(x, y),
			Eq2: g.equation(x, y),
		}
		if math.Abs(s.Eq1.C) > MaxConstant || math.Abs(s.Eq2.C) > MaxConstant {
			continue
		}
		if CheckSystem(s) != nil {
			continue
		}

		q := &Question{
			Text:   describe(st, s),
			System: s,
			XLabel: st.x.label,
			YLabel: st.y.label,
			Source: SourceLocal,
		}
		if seen(q.Text, input.PriorQuestions) {
			continue
		}
		return q, nil
	}
	return nil, fmt.Errorf("local generator: no system found in %d attempts", maxLocalAttempts)
}

func (g *LocalGenerator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// equation picks non-zero coefficients in [-5, 5] and derives c from the
// chosen solution.
func (g *LocalGenerator) equation(x, y int) linsys.Equation {
	coef := func() int {
		c := g.between(1, 5)
		if g.rng.IntN(3) == 0 {
			c = -c
		}
		return c
	}
	a, b := coef(), coef()
	return linsys.Equation{A: float64(a), B: float64(b), C: float64(a*x + b*y)}
}

func seen(text string, prior []string) bool {
	for _, p := range prior {
		if p == text {
			return true
		}
	}
	return false
}

func describe(st story, s linsys.System) string {
	return fmt.Sprintf("At %s, %s. Also, %s. What are %s and %s?",
		st.place,
		sentence(st, s.Eq1),
		sentence(st, s.Eq2),
		st.x.noun, st.y.noun)
}

// sentence words an equation, e.g. "2 times the wind speed minus the wave
// height comes to 3".
func sentence(st story, e linsys.Equation) string {
	var b strings.Builder
	b.WriteString(scaled(e.A, st.x.noun))
	if e.B < 0 {
		b.WriteString(" minus ")
	} else {
		b.WriteString(" plus ")
	}
	b.WriteString(scaled(math.Abs(e.B), st.y.noun))
	b.WriteString(" comes to ")
	b.WriteString(linsys.FormatNumber(e.C))
	return b.String()
}

func scaled(coef float64, noun string) string {
	switch coef {
	case 1:
		return noun
	case -1:
		return "minus " + noun
	}
	return linsys.FormatNumber(coef) + " times " + noun
}

// LocalExplainer writes a worked elimination without a network.
type LocalExplainer struct{}

func (LocalExplainer) Explain(ctx context.Context, q *Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return EliminationSteps(q.System)
}

// EliminationSteps explains how to solve s by eliminating x.
func EliminationSteps(s linsys.System) (string, error) {
	ans, err := linsys.Solve(s)
	if err != nil {
		return "", err
	}
	e1, e2 := s.Eq1, s.Eq2
	n := linsys.FormatNumber

	// a2*(eq1) - a1*(eq2) cancels x.
	by := e1.B*e2.A - e2.B*e1.A
	cy := e1.C*e2.A - e2.C*e1.A

	var b strings.Builder
	fmt.Fprintf(&b, "Start with the two equations:\n  (1) %s\n  (2) %s\n\n", e1, e2)
	fmt.Fprintf(&b, "Multiply (1) by %s and (2) by %s so x has the same coefficient:\n", n(e2.A), n(e1.A))
	fmt.Fprintf(&b, "  %s\n  %s\n\n",
		linsys.Equation{A: e1.A * e2.A, B: e1.B * e2.A, C: e1.C * e2.A},
		linsys.Equation{A: e2.A * e1.A, B: e2.B * e1.A, C: e2.C * e1.A})
	fmt.Fprintf(&b, "Subtract the second from the first to eliminate x:\n  %sy = %s\n", n(by), n(cy))
	fmt.Fprintf(&b, "  y = %s / %s = %s\n\n", n(cy), n(by), n(ans.Y))
	fmt.Fprintf(&b, "Substitute y = %s into (1):\n", n(ans.Y))
	fmt.Fprintf(&b, "  %sx = %s - (%s × %s) = %s\n", n(e1.A), n(e1.C), n(e1.B), n(ans.Y), n(e1.C-e1.B*ans.Y))
	fmt.Fprintf(&b, "  x = %s\n\n", n(ans.X))
	fmt.Fprintf(&b, "The solution is %s.", ans)
	return b.String(), nil
}
