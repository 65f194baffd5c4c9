package llm

import "context"

type sessionKey struct{}

// WithSession attaches an opaque session identifier to the context. The
// orchestrator never interprets it; providers forward it to the backend
// (the OpenAI-compatible wire carries it in the "user" field).
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session identifier, or "".
func SessionFromContext(ctx context.Context) string {
	s, _ := ctx.Value(sessionKey{}).(string)
	return s
}
