// Package trace correlates log lines and audit rows for a single turn.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

type ctxKey struct{}

// GenerateID returns a fresh opaque trace ID.
func GenerateID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; keep IDs unique anyway.
		return fmt.Sprintf("t_%x", time.Now().UnixNano())
	}
	return "t_" + hex.EncodeToString(buf)
}

// WithTraceID returns a child context carrying id.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the trace ID carried by ctx, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
