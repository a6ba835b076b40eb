package assistant

import (
	"sync"
	"time"
)

// DefaultTokenBudget is the maximum number of tokens allowed per session per
// UTC day when no explicit budget is configured. Enough for a long editing
// session on a small model while keeping costs predictable.
const DefaultTokenBudget = 50_000

// TokenBudget enforces a per-session daily token budget for remote calls.
// The counter for each session resets at midnight UTC. Callers should check
// Allow before issuing a Chat request and call RecordUsage with the reported
// token count after a successful one.
//
// TokenBudget is safe for concurrent use.
type TokenBudget struct {
	mu     sync.Mutex
	budget int
	usage  map[string]*dailyUsage
}

type dailyUsage struct {
	tokens  int
	resetAt time.Time // next midnight UTC
}

// NewTokenBudget returns a TokenBudget that allows at most dailyBudget
// tokens per session per UTC day. Non-positive values select the default.
func NewTokenBudget(dailyBudget int) *TokenBudget {
	if dailyBudget <= 0 {
		dailyBudget = DefaultTokenBudget
	}
	return &TokenBudget{
		budget: dailyBudget,
		usage:  make(map[string]*dailyUsage),
	}
}

// Budget returns the configured daily token limit per session.
func (tb *TokenBudget) Budget() int {
	return tb.budget
}

// Allow reports whether the session still has budget today. It does not
// consume tokens; RecordUsage does.
func (tb *TokenBudget) Allow(sessionID string) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.resetIfNeeded(sessionID)

	u := tb.usage[sessionID]
	if u == nil {
		return true
	}
	return u.tokens < tb.budget
}

// RecordUsage adds tokens to the session's running daily total.
func (tb *TokenBudget) RecordUsage(sessionID string, tokens int) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.resetIfNeeded(sessionID)

	u := tb.usage[sessionID]
	if u == nil {
		u = &dailyUsage{resetAt: nextMidnightUTC()}
		tb.usage[sessionID] = u
	}
	u.tokens += tokens
}

// Remaining returns the tokens the session may still consume today.
func (tb *TokenBudget) Remaining(sessionID string) int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.resetIfNeeded(sessionID)

	u := tb.usage[sessionID]
	if u == nil {
		return tb.budget
	}
	if rem := tb.budget - u.tokens; rem > 0 {
		return rem
	}
	return 0
}

// resetIfNeeded drops the session entry once the UTC day has rolled over.
// Must be called with tb.mu held.
func (tb *TokenBudget) resetIfNeeded(sessionID string) {
	u := tb.usage[sessionID]
	if u == nil {
		return
	}
	if time.Now().UTC().After(u.resetAt) {
		delete(tb.usage, sessionID)
	}
}

func nextMidnightUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}
