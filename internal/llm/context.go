package llm

import "context"

// Purposes recorded with each request event.
const (
	PurposeQuestion    = "question-gen"
	PurposeExplanation = "explanation"
	purposeUnset       = "unknown"
)

type purposeKey struct{}

// WithPurpose tags every request made with the returned context, so the
// event log can tell question generation from explanations.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func PurposeFrom(ctx context.Context) string {
	p, _ := ctx.Value(purposeKey{}).(string)
	if p == "" {
		return purposeUnset
	}
	return p
}
