// internal/types/ids.go
package types

import (
	"strings"

	"github.com/google/uuid"
)

type SessionKey string
type SessionID string
type TurnID string

// DefaultSessionID is used when a caller omits the session identifier.
// The orchestrator only forwards session ids; backends interpret them.
const DefaultSessionID SessionID = "agentic-default"

func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

func NewTurnID() TurnID {
	return TurnID(uuid.New().String())
}

// NewSessionKey joins source-scoped parts into a key like "telegram:123:456".
func NewSessionKey(parts ...string) SessionKey {
	return SessionKey(strings.Join(parts, ":"))
}

// OrDefault returns the id itself, or DefaultSessionID when empty.
func (id SessionID) OrDefault() SessionID {
	if id == "" {
		return DefaultSessionID
	}
	return id
}
