package problemgen

import (
	"fmt"
	"math"

	"github.com/abhisek/surfmath/internal/linsys"
)

// Coefficient bounds for generated systems.
const (
	MaxCoefficient = 10
	MaxConstant    = 50
)

// SystemValidator rejects systems with a zero coefficient or no unique
// solution. It wraps CheckSystem so the LLM path and the quiz guard share
// one gate.
type SystemValidator struct{}

func (v *SystemValidator) Name() string { return "system" }

func (v *SystemValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	if err := CheckSystem(q.System); err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   err.Error(),
			Retryable: true,
		}
	}
	return nil
}

// CoefficientRangeValidator keeps coefficients small enough to solve by
// hand: |a|, |b| <= MaxCoefficient and |c| <= MaxConstant, all integers.
type CoefficientRangeValidator struct{}

func (v *CoefficientRangeValidator) Name() string { return "coefficient-range" }

func (v *CoefficientRangeValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	for i, eq := range []linsys.Equation{q.System.Eq1, q.System.Eq2} {
		checks := []struct {
			name  string
			value float64
			limit float64
		}{
			{"a", eq.A, MaxCoefficient},
			{"b", eq.B, MaxCoefficient},
			{"c", eq.C, MaxConstant},
		}
		for _, c := range checks {
			if c.value != math.Trunc(c.value) || math.Abs(c.value) > c.limit {
				return &ValidationError{
					Validator: v.Name(),
					Message: fmt.Sprintf("equation%d.%s = %v must be an integer within ±%v",
						i+1, c.name, c.value, c.limit),
					Retryable: true,
				}
			}
		}
	}
	return nil
}

// IntegerSolutionValidator requires whole-number x and y, so answers can
// be typed without rounding.
type IntegerSolutionValidator struct{}

func (v *IntegerSolutionValidator) Name() string { return "integer-solution" }

func (v *IntegerSolutionValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	ans, err := linsys.Solve(q.System)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error(), Retryable: true}
	}
	if !isWhole(ans.X) || !isWhole(ans.Y) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("solution %v is not a pair of integers", ans),
			Retryable: true,
		}
	}
	return nil
}

func isWhole(f float64) bool {
	return math.Abs(f-math.Round(f)) < 1e-9
}
