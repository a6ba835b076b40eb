// Package assistant provides the remote assistant layer: it sends the user's
// message plus the current site context to an OpenAI-compatible chat API and
// returns a parsed reply with structured actions.
//
// The remote assistant only proposes actions; it never mutates the site.
// Every proposed action still flows through the actions runner's validation
// before it touches the store, and rate limiting bounds token spend per
// session. When no provider is configured (or a call fails), the caller
// falls back to the deterministic local interpreter.
package assistant

import (
	"context"
	"errors"

	"github.com/Kiwi570/bulle/internal/bulle/actions"
	"github.com/Kiwi570/bulle/internal/bulle/site"
)

// ErrRateLimit is returned by a Provider when the upstream API reports a
// rate-limiting condition (e.g. HTTP 429). Callers should surface a
// user-visible message rather than silently retrying.
var ErrRateLimit = errors.New("assistant: upstream rate limit exceeded")

// ErrMalformedOutput is returned by a Provider when the API answers with a
// structurally valid HTTP response whose body cannot be interpreted at all.
// Replies whose content merely fails the reply schema degrade to a
// message-only Reply instead.
var ErrMalformedOutput = errors.New("assistant: malformed response from API")

// HistoryMessage is one prior conversation turn, replayed into the model's
// context window so it has continuity across messages.
type HistoryMessage struct {
	// Role is "user" or "assistant".
	Role string
	// Content is the message text.
	Content string
}

// Request is the input to one assistant call.
type Request struct {
	// SessionID identifies the conversation for rate limiting and budget
	// accounting.
	SessionID string
	// Message is the user's current message.
	Message string
	// History holds the prior turns, oldest first.
	History []HistoryMessage
	// Site is the current site; the prompt includes the active section's
	// content so the model edits what the user sees.
	Site *site.Site
	// SectionID is the active section, or empty.
	SectionID string
}

// Response is the parsed outcome of one assistant call.
type Response struct {
	Reply actions.Reply
	// TokensUsed is the total token count the API reported for this call.
	TokensUsed int
}

// Provider is a remote chat backend.
type Provider interface {
	// Chat sends one turn and returns the parsed reply. Implementations must
	// honor ctx cancellation.
	Chat(ctx context.Context, req Request) (*Response, error)
}
