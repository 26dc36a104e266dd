package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// RetryProvider retries transient failures with capped exponential
// backoff and ±20% jitter. A rate limit that carries a Retry-After hint
// waits that long, up to MaxWait. No pause outlives the ctx deadline. An invalid reply gets one more try per call;
// a truncated one gets none.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
	log   *zap.Logger

	// sleep waits for d or until ctx is done.
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps p. A nil logger disables retry logs.
func WithRetry(p Provider, cfg RetryConfig, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &RetryProvider{inner: p, cfg: cfg, log: log, sleep: sleepCtx}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	retriedInvalid := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case errors.Is(err, ErrTruncated):
			return nil, err
		case errors.Is(err, ErrInvalidResponse):
			if retriedInvalid {
				return nil, err
			}
			retriedInvalid = true
		}
		if attempt >= r.cfg.MaxAttempts {
			return nil, err
		}

		wait := r.wait(attempt, err)
		if dl, ok := ctx.Deadline(); ok && time.Until(dl) < wait {
			// The pause alone would outlive the caller's deadline.
			return nil, err
		}
		r.log.Debug("retrying LLM request",
			zap.String("purpose", PurposeFrom(ctx)),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		if serr := r.sleep(ctx, wait); serr != nil {
			return nil, serr
		}
	}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

// wait returns the pause after the given 1-based attempt.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return min(e.RetryAfter, r.cfg.MaxWait)
	}
	base := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt-1))
	base = math.Min(base, float64(r.cfg.MaxWait))
	return time.Duration(max(base*(0.8+0.4*rand.Float64()), 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
