// internal/dispatch/turn.go

// Package dispatch queues inbound chat turns per session and executes
// them against the orchestrator with bounded concurrency.
package dispatch

import (
	"context"
	"time"

	"github.com/dhirajp15/dhirux-workflows/internal/types"
)

// TurnStatus is the lifecycle state of a queued turn.
type TurnStatus string

const (
	TurnStatusQueued   TurnStatus = "queued"
	TurnStatusRunning  TurnStatus = "running"
	TurnStatusComplete TurnStatus = "complete"
	TurnStatusFailed   TurnStatus = "failed"
)

// Turn is one inbound message waiting for, or undergoing, orchestration.
// OnComplete receives the final guarded response for delivery back to
// the originating channel.
type Turn struct {
	ID         types.TurnID
	SessionID  types.SessionID
	Text       string
	Source     string
	Status     TurnStatus
	Attempts   int
	CreatedAt  time.Time
	Ctx        context.Context
	OnComplete func(response string)
}

// NewTurn creates a Turn in the Queued state.
func NewTurn(sessionID types.SessionID, text, source string) *Turn {
	return &Turn{
		ID:        types.NewTurnID(),
		SessionID: sessionID,
		Text:      text,
		Source:    source,
		Status:    TurnStatusQueued,
		CreatedAt: time.Now(),
	}
}
