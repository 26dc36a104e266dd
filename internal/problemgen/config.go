package problemgen

// Config controls the LLM generator and explainer.
type Config struct {
	// Validators run in order on every generated question; the first
	// failure stops the pipeline.
	Validators []Validator

	MaxTokens        int
	ExplainMaxTokens int
	Temperature      float64

	// MaxPriorQuestions caps the dedup list sent in the prompt.
	MaxPriorQuestions int

	// Spot optionally pins problems to a surf spot, e.g. "Peniche".
	Spot string
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&CoefficientRangeValidator{},
			&SystemValidator{},
			&IntegerSolutionValidator{},
		},
		MaxTokens:         1024,
		ExplainMaxTokens:  1024,
		Temperature:       0.9,
		MaxPriorQuestions: 8,
	}
}
