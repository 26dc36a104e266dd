package llm

import "context"

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// completion is what a vendor adapter pulls out of its SDK's reply.
type completion struct {
	text      string
	truncated bool
	usage     Usage

	// model that served the request; empty means the configured one.
	model string
}

// generate runs one vendor call and applies the rules every adapter
// shares: a cut-off structured reply is an error, structured replies are
// validated, free text is wrapped as a JSON string.
func generate(ctx context.Context, req Request, model string, call func(context.Context, Request) (completion, error)) (*Response, error) {
	c, err := call(ctx, req)
	if err != nil {
		return nil, err
	}
	if c.truncated && req.Schema != nil {
		return nil, truncatedResponse(c.text)
	}

	content, err := finishContent(req, c.text)
	if err != nil {
		return nil, err
	}

	resp := &Response{Content: content, Usage: c.usage, Model: c.model, StopReason: StopEnd}
	if resp.Model == "" {
		resp.Model = model
	}
	if c.truncated {
		resp.StopReason = StopMaxTokens
	}
	if resp.Usage.TotalTokens == 0 {
		resp.Usage.TotalTokens = resp.Usage.InputTokens + resp.Usage.OutputTokens
	}
	return resp, nil
}
