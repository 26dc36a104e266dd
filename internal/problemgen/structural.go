package problemgen

import (
	"fmt"
	"strings"
)

const (
	maxTextLen  = 600
	maxLabelLen = 60
)

// StructuralValidator checks that the text fields are present and sized
// for the terminal.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	if strings.TrimSpace(q.Text) == "" {
		return fail("problem_text is empty")
	}
	if len(q.Text) > maxTextLen {
		return fail(fmt.Sprintf("problem_text exceeds %d characters", maxTextLen))
	}
	labels := []struct{ field, value string }{
		{"variable_x", q.XLabel},
		{"variable_y", q.YLabel},
	}
	for _, l := range labels {
		if strings.TrimSpace(l.value) == "" {
			return fail(l.field + " is empty")
		}
		if len(l.value) > maxLabelLen {
			return fail(fmt.Sprintf("%s exceeds %d characters", l.field, maxLabelLen))
		}
	}
	if strings.EqualFold(strings.TrimSpace(q.XLabel), strings.TrimSpace(q.YLabel)) {
		return fail("variable_x and variable_y must describe different quantities")
	}
	return nil
}
