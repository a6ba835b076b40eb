package assistant

import (
	"sync"
	"time"
)

const (
	// DefaultRateLimit is the maximum number of remote assistant calls
	// allowed per session per minute when no explicit limit is configured.
	DefaultRateLimit = 20

	defaultRateLimitWindow = time.Minute
)

// RateLimiter enforces a per-session sliding-window limit on remote calls.
// It keeps the call timestamps for each session within the current window
// and prunes stale entries on every Allow call, so memory stays bounded to
// O(limit) entries per active session.
//
// RateLimiter is safe for concurrent use.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	counters map[string][]time.Time
}

// NewRateLimiter returns a RateLimiter that allows at most limit calls per
// session within window. Non-positive arguments select the defaults.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = defaultRateLimitWindow
	}
	return &RateLimiter{
		limit:    limit,
		window:   window,
		counters: make(map[string][]time.Time),
	}
}

// Allow reports whether the session may make another remote call, recording
// the current timestamp when it may.
func (r *RateLimiter) Allow(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-r.window)

	existing := r.counters[sessionID]
	valid := existing[:0]
	for _, t := range existing {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= r.limit {
		r.counters[sessionID] = valid
		return false
	}

	r.counters[sessionID] = append(valid, now)
	return true
}

// Remaining returns the number of calls the session can still make within
// the current window. Zero means the next Allow call will return false.
func (r *RateLimiter) Remaining(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-r.window)
	count := 0
	for _, t := range r.counters[sessionID] {
		if t.After(cutoff) {
			count++
		}
	}
	rem := r.limit - count
	if rem < 0 {
		return 0
	}
	return rem
}
