package problemgen

import "github.com/abhisek/surfmath/internal/llm"

func equationSchema(ordinal string) map[string]any {
	coef := func(v string) map[string]any {
		return map[string]any{
			"type":        "integer",
			"minimum":     -MaxCoefficient,
			"maximum":     MaxCoefficient,
			"description": "Non-zero coefficient of " + v,
		}
	}
	return map[string]any{
		"type":        "object",
		"description": "The " + ordinal + " equation, a*x + b*y = c",
		"properties": map[string]any{
			"a": coef("x"),
			"b": coef("y"),
			"c": map[string]any{
				"type":        "integer",
				"minimum":     -MaxConstant,
				"maximum":     MaxConstant,
				"description": "Constant term",
			},
		},
		"required":             []any{"a", "b", "c"},
		"additionalProperties": false,
	}
}

// QuestionSchema is the structured output requested from the model.
var QuestionSchema = &llm.Schema{
	Name:        "linear-system-question",
	Description: "A surf-themed word problem backed by a system of two linear equations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem_text": map[string]any{
				"type":        "string",
				"description": "The word problem shown to the learner, in plain text",
			},
			"equation1": equationSchema("first"),
			"equation2": equationSchema("second"),
			"variable_x": map[string]any{
				"type":        "string",
				"description": "What x represents, with units, e.g. \"wind speed (knots)\"",
			},
			"variable_y": map[string]any{
				"type":        "string",
				"description": "What y represents, with units, e.g. \"wave height (ft)\"",
			},
		},
		"required":             []any{"problem_text", "equation1", "equation2", "variable_x", "variable_y"},
		"additionalProperties": false,
	},
}
