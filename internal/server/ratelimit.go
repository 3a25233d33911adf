package server

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// RateLimiter applies a per-client token bucket: each client starts with
// burst tokens and gains rps tokens per second up to that cap. Every allowed
// request consumes one token.
type RateLimiter struct {
	mu      sync.Mutex
	rps     float64
	burst   float64
	clients map[string]*tokenBucket
}

type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter refilling rps tokens per second with
// the given burst capacity. A burst below one is raised to one.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rps,
		burst:   float64(burst),
		clients: make(map[string]*tokenBucket),
	}
}

// Allow takes one token from the client's bucket. When the bucket is empty it
// returns a RateLimitError carrying a retry hint.
func (rl *RateLimiter) Allow(clientID string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, exists := rl.clients[clientID]
	if !exists {
		bucket = &tokenBucket{tokens: rl.burst, lastRefill: now}
		rl.clients[clientID] = bucket
	}

	bucket.refill(now, rl.rps, rl.burst)

	if bucket.tokens < 1 {
		return &RateLimitError{
			Limit:      rl.rps,
			Burst:      int(rl.burst),
			RetryAfter: rl.retryAfter(bucket),
		}
	}

	bucket.tokens--
	return nil
}

// Tokens returns the client's remaining tokens without consuming any.
func (rl *RateLimiter) Tokens(clientID string) float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket, exists := rl.clients[clientID]
	if !exists {
		return rl.burst
	}
	bucket.refill(time.Now(), rl.rps, rl.burst)
	return bucket.tokens
}

// retryAfter estimates how long until the bucket holds a full token again.
func (rl *RateLimiter) retryAfter(bucket *tokenBucket) time.Duration {
	if rl.rps <= 0 {
		return time.Second
	}
	missing := 1 - bucket.tokens
	return time.Duration(missing / rl.rps * float64(time.Second))
}

func (b *tokenBucket) refill(now time.Time, rps, burst float64) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed > 0 && rps > 0 {
		b.tokens = math.Min(burst, b.tokens+elapsed*rps)
	}
	b.lastRefill = now
}

// RateLimitError represents a rejected request.
type RateLimitError struct {
	Limit      float64       // refill rate in requests per second
	Burst      int           // bucket capacity
	RetryAfter time.Duration // how long to wait before retrying
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded (%.1f requests/s, burst %d, retry after %v)",
		e.Limit, e.Burst, e.RetryAfter)
}
