// internal/types/models.go
package types

import "time"

// SessionIndex is the persisted record of one logical conversation.
type SessionIndex struct {
	SessionID   SessionID  `json:"session_id"`
	SessionKey  SessionKey `json:"session_key"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastTurnSeq int64      `json:"last_turn_seq"`
}

// Turn is one recorded message-in or message-out entry in a session's
// transcript. The assistant text is recorded post-guard, so transcripts
// never contain output the caller did not see.
type Turn struct {
	ID        TurnID    `json:"id"`
	SessionID SessionID `json:"session_id"`
	Seq       int64     `json:"seq"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Source    string    `json:"source,omitempty"`
	At        time.Time `json:"at"`
}
