// munui/models/services.go
package models

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// --- Stateful Services ---

// RateLimiter hands out a token bucket per client key (IP address).
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time

	every  time.Duration
	burst  int
	expire time.Duration
}

// NewRateLimiter creates a rate limiter and starts its pruning loop.
func NewRateLimiter(every time.Duration, burst int, prune, expire time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		every:    every,
		burst:    burst,
		expire:   expire,
	}
	go rl.cleanup(prune)
	return rl
}

// GetLimiter retrieves or creates the rate limiter for a given client key.
func (rl *RateLimiter) GetLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(rl.every), rl.burst)
		rl.limiters[key] = limiter
	}
	rl.lastSeen[key] = time.Now()
	return limiter
}

// cleanup periodically removes entries not seen within the expiry window.
func (rl *RateLimiter) cleanup(prune time.Duration) {
	for range time.Tick(prune) {
		rl.mu.Lock()
		cutoff := time.Now().Add(-rl.expire)
		for key, lastSeen := range rl.lastSeen {
			if lastSeen.Before(cutoff) {
				delete(rl.limiters, key)
				delete(rl.lastSeen, key)
			}
		}
		rl.mu.Unlock()
	}
}
