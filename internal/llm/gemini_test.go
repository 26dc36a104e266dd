package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL + "/",
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func geminiReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			},
			"finishReason": finish,
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     20,
			"candidatesTokenCount": 10,
			"totalTokenCount":      30,
		},
		"modelVersion": "gemini-2.5-flash-001",
	}
}

func TestGeminiProvider_StructuredOutput(t *testing.T) {
	var path string
	var body map[string]any
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply(`{"a":3,"b":2,"c":1}`, "STOP"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write surf maths problems.",
		Messages:  []Message{{Role: RoleUser, Content: "One equation."}},
		Schema:    pairSchema(),
		MaxTokens: 128,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":3,"b":2,"c":1}` {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Model != "gemini-2.5-flash-001" || resp.Usage.TotalTokens != 30 {
		t.Errorf("resp = %+v", resp)
	}
	if !strings.Contains(path, "gemini-2.5-flash:generateContent") {
		t.Errorf("friendly model not resolved in path %q", path)
	}
	if _, ok := body["generationConfig"]; !ok {
		t.Error("expected generationConfig in request")
	}
}

func TestGeminiProvider_Truncated(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply(`{"a":3,`, "MAX_TOKENS"))
	})

	_, err := p.Generate(context.Background(), Request{Schema: pairSchema(), MaxTokens: 4})
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if string(ResponseContent(err)) != `{"a":3,` {
		t.Errorf("truncated reply not kept: %s", ResponseContent(err))
	}
}

func TestGeminiProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusServiceUnavailable, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"code": tt.status, "message": "nope"},
				})
			})
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 16,
			})
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	schema := geminiSchema(pairSchema().Definition)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	a := schema.Properties["a"]
	if a.Type != genai.TypeInteger {
		t.Fatalf("expected INTEGER for a, got %s", a.Type)
	}
	if a.Minimum == nil || *a.Minimum != -10 || a.Maximum == nil || *a.Maximum != 10 {
		t.Fatalf("bounds not carried over: min=%v max=%v", a.Minimum, a.Maximum)
	}
	if schema.Properties["c"].Minimum != nil {
		t.Fatal("unbounded property should have no minimum")
	}
	if len(schema.Properties["label"].Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %d", len(schema.Properties["label"].Enum))
	}
	if len(schema.Required) != 3 {
		t.Fatalf("expected 3 required fields, got %d", len(schema.Required))
	}
}

func TestGeminiSchema_ArraysAndLiterals(t *testing.T) {
	schema := geminiSchema(map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "number", "maximum": 2.5},
		"required": []string{"x"},
	})
	if schema.Type != genai.TypeArray || schema.Items == nil || schema.Items.Type != genai.TypeNumber {
		t.Fatalf("unexpected schema: %+v", schema)
	}
	if *schema.Items.Maximum != 2.5 {
		t.Fatalf("maximum = %v", *schema.Items.Maximum)
	}
	if len(schema.Required) != 1 {
		t.Errorf("[]string required not carried: %v", schema.Required)
	}

	if geminiSchema(map[string]any{"type": "null"}).Type != genai.TypeString {
		t.Error("unknown type should fall back to string")
	}
}
