package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/surfmath/internal/store"
)

// LoggingProvider records every request in the event log and as a debug
// log line. Either sink may be absent.
type LoggingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	log      *zap.Logger
}

// WithLogging wraps p. provider is the vendor name stored with each event.
func WithLogging(p Provider, provider string, repo store.EventRepo, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: provider, repo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(PurposeFrom(ctx), req, resp, err, time.Since(start))

	fields := []zap.Field{
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.Int64("latency_ms", ev.LatencyMs),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
	}
	if err != nil {
		l.log.Warn("LLM request failed", append(fields, zap.String("class", errorClass(err)), zap.Error(err))...)
	} else {
		l.log.Debug("LLM request", fields...)
	}

	if l.repo != nil {
		// The request outcome stands even if the audit write fails.
		if werr := l.repo.AppendLLMRequest(ctx, ev); werr != nil {
			l.log.Warn("failed to record LLM request event", zap.Error(werr))
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) event(purpose string, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	switch {
	case resp != nil:
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.ResponseBody = string(resp.Content)
	case err != nil:
		// Keep what a rejected reply said so `surfmath llm view` can show it.
		ev.ResponseBody = string(ResponseContent(err))
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	return ev
}

// errorClass names the failure class for log fields.
func errorClass(err error) string {
	for _, c := range []struct {
		err  error
		name string
	}{
		{ErrRateLimited, "rate_limited"},
		{ErrInvalidResponse, "invalid_response"},
		{ErrTruncated, "truncated"},
		{ErrUnavailable, "unavailable"},
		{context.DeadlineExceeded, "timeout"},
		{context.Canceled, "canceled"},
	} {
		if errors.Is(err, c.err) {
			return c.name
		}
	}
	return "other"
}

// transcript renders the request the way `surfmath llm view` shows it.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
