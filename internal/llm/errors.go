package llm

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// Failure classes. Every error a vendor adapter returns matches exactly
// one of these with errors.Is.
var (
	ErrUnavailable     = errors.New("llm provider unavailable")
	ErrRateLimited     = errors.New("llm rate limited")
	ErrInvalidResponse = errors.New("invalid llm response")
	ErrTruncated       = errors.New("llm response truncated at max tokens")
)

// Error is a classified vendor failure.
type Error struct {
	// Class is one of the Err* sentinels above.
	Class error

	// RetryAfter is the vendor's backoff hint on rate limits, if any.
	RetryAfter time.Duration

	// Content keeps the offending reply for invalid and truncated
	// responses.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Class.Error()
	}
	return e.Class.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Class}
	}
	return []error{e.Class, e.Err}
}

// ResponseContent returns the reply carried by a failed request, or nil.
func ResponseContent(err error) json.RawMessage {
	var e *Error
	if errors.As(err, &e) {
		return e.Content
	}
	return nil
}

func invalidResponse(content json.RawMessage, err error) error {
	return &Error{Class: ErrInvalidResponse, Content: content, Err: err}
}

func truncatedResponse(content string) error {
	return &Error{Class: ErrTruncated, Content: json.RawMessage(content)}
}

// fromStatus classifies an SDK error by its HTTP status. Anything that is
// not a 429 counts as an outage.
func fromStatus(status int, err error) *Error {
	if status == http.StatusTooManyRequests {
		return &Error{Class: ErrRateLimited, Err: err}
	}
	return &Error{Class: ErrUnavailable, Err: err}
}

// retryAfter reads a Retry-After header given in seconds or as an HTTP
// date. Zero means no usable hint.
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return max(time.Duration(secs)*time.Second, 0)
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(at.Sub(now), 0)
	}
	return 0
}
