// internal/types/interfaces.go
package types

import "context"

type SessionStore interface {
	ResolveOrCreate(ctx context.Context, key SessionKey) (SessionID, error)
	Get(ctx context.Context, id SessionID) (*SessionIndex, error)
	List(ctx context.Context) ([]*SessionIndex, error)
	Touch(ctx context.Context, id SessionID) error
}

type TranscriptStore interface {
	Append(ctx context.Context, turn *Turn) error
	Tail(ctx context.Context, sessionID SessionID, limit int) ([]*Turn, error)
	Count(ctx context.Context, sessionID SessionID) (int64, error)
}
