// Package linsys models systems of two linear equations in two unknowns.
package linsys

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tolerance is the maximum residual for an answer to count as correct.
// The comparison is strict: a residual equal to Tolerance is incorrect.
const Tolerance = 0.001

// ErrDegenerateSystem is returned by Solve when the determinant is zero.
var ErrDegenerateSystem = errors.New("linsys: system has no unique solution")

// Equation is a·x + b·y = c.
type Equation struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// System is an ordered pair of equations sharing the unknowns x and y.
type System struct {
	Eq1 Equation `json:"equation1"`
	Eq2 Equation `json:"equation2"`
}

// Answer is a candidate solution (x, y). Unparseable input is carried as NaN.
type Answer struct {
	X float64
	Y float64
}

// Determinant returns a1·b2 − a2·b1.
func (s System) Determinant() float64 {
	return s.Eq1.A*s.Eq2.B - s.Eq2.A*s.Eq1.B
}

// IsWellFormed reports whether every x and y coefficient is non-zero.
// Constant terms may be anything.
func IsWellFormed(s System) bool {
	return s.Eq1.A != 0 && s.Eq1.B != 0 && s.Eq2.A != 0 && s.Eq2.B != 0
}

// HasUniqueSolution reports whether the determinant is non-zero.
// The test is exact; near-singular systems still count as unique.
func HasUniqueSolution(s System) bool {
	return s.Determinant() != 0
}

// Solve returns the unique solution using Cramer's rule.
func Solve(s System) (Answer, error) {
	d := s.Determinant()
	if d == 0 {
		return Answer{}, ErrDegenerateSystem
	}
	x := (s.Eq1.C*s.Eq2.B - s.Eq2.C*s.Eq1.B) / d
	y := (s.Eq1.A*s.Eq2.C - s.Eq2.A*s.Eq1.C) / d
	return Answer{X: x, Y: y}, nil
}

// CheckAnswer reports whether ans satisfies both equations within Tolerance.
// NaN or infinite components are always incorrect.
func CheckAnswer(s System, ans Answer) bool {
	if !finite(ans.X) || !finite(ans.Y) {
		return false
	}
	return residual(s.Eq1, ans) < Tolerance && residual(s.Eq2, ans) < Tolerance
}

func residual(e Equation, ans Answer) float64 {
	return math.Abs(e.A*ans.X + e.B*ans.Y - e.C)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParseAnswer converts the two text fields into an Answer.
// Empty or non-numeric fields become NaN so the check fails instead of erroring.
func ParseAnswer(x, y string) Answer {
	return Answer{X: parseComponent(x), Y: parseComponent(y)}
}

func parseComponent(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	// Accept a decimal comma, common on mobile keyboards.
	s = strings.Replace(s, ",", ".", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// String renders the equation in the usual form, e.g. "2x - y = 3".
func (e Equation) String() string {
	var b strings.Builder
	b.WriteString(term(e.A, "x", true))
	b.WriteString(term(e.B, "y", false))
	b.WriteString(" = ")
	b.WriteString(FormatNumber(e.C))
	return b.String()
}

// String renders both equations on separate lines.
func (s System) String() string {
	return s.Eq1.String() + "\n" + s.Eq2.String()
}

func term(coef float64, v string, leading bool) string {
	if coef == 0 {
		if leading {
			return "0" + v
		}
		return ""
	}
	sign := ""
	switch {
	case leading && coef < 0:
		sign = "-"
	case !leading && coef < 0:
		sign = " - "
	case !leading:
		sign = " + "
	}
	mag := math.Abs(coef)
	if mag == 1 {
		return sign + v
	}
	return sign + FormatNumber(mag) + v
}

// FormatNumber prints f without trailing zeros, e.g. "7" or "-2.5".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String renders the answer as an ordered pair.
func (a Answer) String() string {
	return fmt.Sprintf("(%s, %s)", FormatNumber(a.X), FormatNumber(a.Y))
}
