package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply. A non-nil Err is returned instead
// of a response.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockText scripts a free-text reply.
func MockText(text string) MockResponse {
	content, _ := textContent(text)
	return MockResponse{Content: content}
}

// MockProvider plays back a script of replies in order and keeps every
// request it received. Once the script runs out it behaves like an
// unreachable vendor, which is what the "mock" provider setting relies on
// to exercise the offline fallbacks.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse

	// Calls holds the requests seen so far. Read it only after the
	// Generate calls under test have returned.
	Calls []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.script) == 0 {
		return nil, &Error{Class: ErrUnavailable}
	}

	next := m.script[0]
	m.script = m.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	usage := next.Usage
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: next.Content, Usage: usage, Model: "mock", StopReason: StopEnd}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount returns how many requests the mock has seen.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
