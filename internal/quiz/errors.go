package quiz

import (
	"errors"
	"fmt"
)

// ErrQuit is returned by a Player to leave a session early.
var ErrQuit = errors.New("quiz: player quit")

// ProviderUnavailableError means no acceptable question was produced.
// The guarded provider recovers from it by serving the fallback question.
type ProviderUnavailableError struct {
	Attempts int
	Err      error
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("question provider unavailable after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error {
	return e.Err
}

// ExplanationUnavailableError means no worked solution was produced.
// It is recovered by serving problemgen.FallbackExplanation.
type ExplanationUnavailableError struct {
	Err error
}

func (e *ExplanationUnavailableError) Error() string {
	return fmt.Sprintf("explanation unavailable: %v", e.Err)
}

func (e *ExplanationUnavailableError) Unwrap() error {
	return e.Err
}
