package tools

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"github.com/NERVsystems/staticsnap/pkg/metrics"
)

// RateLimiter applies a token bucket per tool so one busy tool cannot starve
// the others.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
}

// NewRateLimiter creates a limiter allowing rps calls per second per tool
// with bursts of up to burst calls.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(tool string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[tool]
	if !exists {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[tool] = limiter
	}
	return limiter
}

// Wait blocks until the rate limit for the specified tool allows a call
// or the context is canceled.
func (rl *RateLimiter) Wait(ctx context.Context, tool string) error {
	limiter := rl.limiter(tool)
	if limiter.Allow() {
		return nil
	}

	metrics.RateLimitWaits.WithLabelValues(tool).Inc()
	if err := limiter.Wait(ctx); err != nil {
		slog.Debug("rate limiter wait error", "tool", tool, "error", err)
		return err
	}
	return nil
}
