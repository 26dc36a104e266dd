// Package llm talks to text-generation services. Vendors sit behind the
// Provider interface; retry and event logging are layered on as decorators.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider sends one request to a text-generation service.
type Provider interface {
	// Generate returns schema-validated JSON when req.Schema is set, and a
	// JSON string holding the raw text otherwise.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	System   string
	Messages []Message

	// Schema asks the provider for structured output. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default in place.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is the JSON Schema a structured response must satisfy.
type Schema struct {
	// Name identifies the schema, e.g. "linear-system-question". It doubles
	// as the cache key for the compiled validator.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the validated JSON object for schema requests, or the
	// text encoded as a JSON string for free-text requests.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text decodes a free-text response. Content that is not a JSON string
// is returned verbatim.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err != nil {
		return string(r.Content)
	}
	return s
}

// textContent wraps raw model text as a JSON string.
func textContent(text string) (json.RawMessage, error) {
	b, err := json.Marshal(text)
	if err != nil {
		return nil, fmt.Errorf("encode text response: %w", err)
	}
	return b, nil
}

// finishContent turns the vendor's raw text into Response content,
// validating it when the request carried a schema.
func finishContent(req Request, raw string) (json.RawMessage, error) {
	if req.Schema == nil {
		return textContent(raw)
	}
	content := json.RawMessage(raw)
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return content, nil
}
