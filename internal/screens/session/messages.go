package session

import "github.com/abhisek/surfmath/internal/quiz"

// eventMsg carries the result of a fulfilled engine request back to Update.
type eventMsg struct {
	Event quiz.Event
}
