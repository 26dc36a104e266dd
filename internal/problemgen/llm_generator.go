package problemgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/surfmath/internal/linsys"
	"github.com/abhisek/surfmath/internal/llm"
)

// LLMGenerator implements Generator and Explainer on top of an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw model response before validation.
type questionOutput struct {
	ProblemText string         `json:"problem_text"`
	Equation1   equationOutput `json:"equation1"`
	Equation2   equationOutput `json:"equation2"`
	VariableX   string         `json:"variable_x"`
	VariableY   string         `json:"variable_y"`
}

type equationOutput struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

func (e equationOutput) equation() linsys.Equation {
	return linsys.Equation{A: e.A, B: e.B, C: e.C}
}

func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestion)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	q := &Question{
		Text: strings.TrimSpace(raw.ProblemText),
		System: linsys.System{
			Eq1: raw.Equation1.equation(),
			Eq2: raw.Equation2.equation(),
		},
		XLabel: strings.TrimSpace(raw.VariableX),
		YLabel: strings.TrimSpace(raw.VariableY),
		Source: SourceLLM,
	}

	if verr := runValidators(g.config.Validators, q, input); verr != nil {
		return nil, verr
	}
	return q, nil
}

// Explain asks the model for a worked solution in free text.
func (g *LLMGenerator) Explain(ctx context.Context, q *Question) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExplanation)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: explainSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildExplainMessage(q)},
		},
		MaxTokens:   g.config.ExplainMaxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("LLM explanation failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("LLM explanation failed: empty response")
	}
	return text, nil
}
