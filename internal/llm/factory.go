package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/surfmath/internal/store"
)

// vendors builds the base provider for each vendor name.
var vendors = map[string]func(ctx context.Context, cfg Config) (Provider, error){
	ProviderAnthropic: func(_ context.Context, cfg Config) (Provider, error) {
		return NewAnthropicProvider(cfg.Anthropic)
	},
	ProviderOpenAI: func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenAIProvider(cfg.OpenAI)
	},
	ProviderGemini: func(ctx context.Context, cfg Config) (Provider, error) {
		return NewGeminiProvider(ctx, cfg.Gemini)
	},
	ProviderOpenRouter: func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenRouterProvider(cfg.OpenRouter)
	},
	ProviderMock: func(context.Context, Config) (Provider, error) {
		return NewMockProvider(), nil
	},
}

// NewProvider builds the configured vendor and wraps it as
// caller → timeout → retry → logging → vendor, so every attempt is logged
// and cfg.Timeout bounds the whole call, retries included.
// eventRepo and log may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := vendors[cfg.Provider](ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	if cfg.Provider == ProviderMock {
		// An empty script never recovers; retrying only delays the fallback.
		return WithTimeout(logged, cfg.Timeout), nil
	}
	return WithTimeout(WithRetry(logged, cfg.Retry, log), cfg.Timeout), nil
}
