package problemgen

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildUserMessage_MinimalContext(t *testing.T) {
	msg := buildUserMessage(GenerateInput{}, DefaultConfig())

	if !strings.Contains(msg, "surf maths problem") {
		t.Error("missing request line")
	}
	if !strings.Contains(msg, "Already asked in this session:\nNone") {
		t.Error("expected 'None' for prior questions")
	}
	if strings.Contains(msg, "Set it at") {
		t.Error("unexpected spot without config")
	}
}

func TestBuildUserMessage_WithSpot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Spot = "Peniche"
	msg := buildUserMessage(GenerateInput{}, cfg)
	if !strings.Contains(msg, "Set it at Peniche.") {
		t.Errorf("missing spot in %q", msg)
	}
}

func TestBuildUserMessage_WithHistory(t *testing.T) {
	input := GenerateInput{
		PriorQuestions: []string{"First wave problem", "Second wave problem"},
	}
	msg := buildUserMessage(input, DefaultConfig())

	if !strings.Contains(msg, "1. First wave problem") {
		t.Error("missing first prior question")
	}
	if !strings.Contains(msg, "2. Second wave problem") {
		t.Error("missing second prior question")
	}
}

func TestBuildUserMessage_TruncatesPriorQuestions(t *testing.T) {
	var prior []string
	for i := range 12 {
		prior = append(prior, fmt.Sprintf("Q%d", i))
	}
	cfg := DefaultConfig()
	cfg.MaxPriorQuestions = 3
	msg := buildUserMessage(GenerateInput{PriorQuestions: prior}, cfg)

	if strings.Contains(msg, "Q8\n") || strings.Contains(msg, "Q0") {
		t.Error("expected old questions to be dropped")
	}
	for _, want := range []string{"1. Q9", "2. Q10", "3. Q11"} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestBuildExplainMessage(t *testing.T) {
	msg := buildExplainMessage(validQuestion())

	for _, want := range []string{
		"Problem: At Peniche",
		"  x + y = 12\n  2x - y = 3\n",
		"x = wind speed (knots)",
		"y = wave height (ft)",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("explain message missing %q:\n%s", want, msg)
		}
	}
}

func TestQuestionSchema_Shape(t *testing.T) {
	def := QuestionSchema.Definition
	if def["additionalProperties"] != false {
		t.Error("schema must forbid extra properties")
	}
	props := def["properties"].(map[string]any)
	for _, key := range []string{"problem_text", "equation1", "equation2", "variable_x", "variable_y"} {
		if _, ok := props[key]; !ok {
			t.Errorf("missing property %q", key)
		}
	}
	eq := props["equation1"].(map[string]any)["properties"].(map[string]any)
	if eq["a"].(map[string]any)["maximum"] != MaxCoefficient {
		t.Error("coefficient bound not applied")
	}
}
