package problemgen

import (
	"errors"
	"fmt"

	"github.com/abhisek/surfmath/internal/linsys"
)

// Validator checks a generated question.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name is a short identifier used in errors and logs, e.g. "system".
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *Question, input GenerateInput) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool // whether regenerating is likely to fix it
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

var (
	ErrNotWellFormed    = errors.New("a coefficient of x or y is zero")
	ErrNoUniqueSolution = errors.New("determinant is zero")
)

// CheckSystem is the one acceptance test every question passes before it
// is shown: all x and y coefficients non-zero and a unique solution.
func CheckSystem(s linsys.System) error {
	if !linsys.IsWellFormed(s) {
		return ErrNotWellFormed
	}
	if !linsys.HasUniqueSolution(s) {
		return ErrNoUniqueSolution
	}
	return nil
}

// runValidators applies validators in order and returns the first failure.
func runValidators(validators []Validator, q *Question, input GenerateInput) *ValidationError {
	for _, v := range validators {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}
