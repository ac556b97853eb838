package keyval

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/formsink/formsink/internal/domain"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimiter enforces fixed-window quotas on the store's atomic counter.
// INCR opens or advances the window in one round trip; an NX expiry pins
// the window end on the first increment and leaves it untouched afterwards,
// so the window never slides.
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a new key/value rate limiter.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Check records one request for the identifier and reports whether it fits
// the current window. Counts past the cap keep growing until the key
// expires; the decision only compares against the cap, so the overshoot is
// harmless.
func (r *RateLimiter) Check(ctx context.Context, identifier string, maxRequests, windowSeconds int) (domain.RateDecision, error) {
	key := rateLimitKeyPrefix + identifier
	window := time.Duration(windowSeconds) * time.Second

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.RateDecision{}, mapError(err, "check rate limit")
	}

	if incr.Val() <= int64(maxRequests) {
		return domain.RateDecision{Allowed: true}, nil
	}

	remaining, err := r.client.PTTL(ctx, key).Result()
	if err != nil {
		return domain.RateDecision{}, mapError(err, "check rate limit")
	}

	// PTTL reports no expiry as a negative duration; fall back to the full
	// window rather than a zero retry hint.
	retryAfter := int64(windowSeconds)
	if remaining > 0 {
		retryAfter = (remaining.Milliseconds() + 999) / 1000 // round up to whole seconds
	}

	return domain.RateDecision{Allowed: false, RetryAfterSeconds: retryAfter}, nil
}
