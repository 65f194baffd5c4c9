// internal/agentic/service.go

// Package agentic is the chat orchestrator: it classifies each inbound
// message, routes it to a deterministic answer, the primary agent, or
// the classic fallback worker, and passes every backend response through
// the output-safety guard. The orchestrator holds no mutable state
// across turns; session history lives with the backends.
package agentic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dhirajp15/dhirux-workflows/internal/bridge"
	"github.com/dhirajp15/dhirux-workflows/internal/classify"
	"github.com/dhirajp15/dhirux-workflows/internal/clock"
	"github.com/dhirajp15/dhirux-workflows/internal/guard"
	"github.com/dhirajp15/dhirux-workflows/internal/types"
)

// PrimaryAgent is the agentic backend. Ready is a capability probe that
// must never fail hard; unreadiness reroutes to the fallback worker.
type PrimaryAgent interface {
	Ready() bool
	Invoke(ctx context.Context, text string, session types.SessionID) (string, error)
	Producer(text string, session types.SessionID) bridge.Producer
}

// FallbackWorker is the classic chat backend used when the primary agent
// is unavailable.
type FallbackWorker interface {
	Dispatch(ctx context.Context, text string, session types.SessionID) (string, error)
	Stream(ctx context.Context, text string, session types.SessionID) (<-chan string, error)
}

// Options wires a Service.
type Options struct {
	Enabled       bool
	AllowFallback bool
	Agent         PrimaryAgent
	Worker        FallbackWorker
	Clock         *clock.Clock
	Transcripts   types.TranscriptStore // optional; nil disables recording
}

// Service is the orchestrator facade.
type Service struct {
	enabled       bool
	allowFallback bool
	agent         PrimaryAgent
	worker        FallbackWorker
	clock         *clock.Clock
	transcripts   types.TranscriptStore
}

// NewService creates the orchestrator.
func NewService(opts Options) *Service {
	c := opts.Clock
	if c == nil {
		c = clock.New()
	}
	return &Service{
		enabled:       opts.Enabled,
		allowFallback: opts.AllowFallback,
		agent:         opts.Agent,
		worker:        opts.Worker,
		clock:         c,
		transcripts:   opts.Transcripts,
	}
}

// Enabled reports the process-wide enablement flag.
func (s *Service) Enabled() bool {
	return s.enabled
}

// Ready reports whether the agentic path is fully available.
func (s *Service) Ready() bool {
	return s.enabled && s.agentReady()
}

func (s *Service) agentReady() bool {
	return s.agent != nil && s.agent.Ready()
}

// Chat executes one turn and returns the complete, guarded response.
func (s *Service) Chat(ctx context.Context, message string, session types.SessionID) (string, error) {
	if !s.enabled {
		return "", ErrDisabled
	}
	session = session.OrDefault()
	s.record(ctx, session, types.RoleUser, message)

	switch classify.Classify(message) {
	case classify.RouteTimeQuery:
		reply := s.timeResponse(message)
		s.record(ctx, session, types.RoleAssistant, reply)
		return reply, nil
	case classify.RouteVerification:
		s.record(ctx, session, types.RoleAssistant, VerificationRefusal)
		return VerificationRefusal, nil
	}

	if s.agentReady() {
		text, err := s.agent.Invoke(ctx, englishOnlyInput(message), session)
		if err != nil {
			return "", fmt.Errorf("agent chat: %w", err)
		}
		reply := guard.Sanitize(text)
		s.record(ctx, session, types.RoleAssistant, reply)
		return reply, nil
	}

	if s.allowFallback && s.worker != nil {
		text, err := s.worker.Dispatch(ctx, englishOnlyInput(message), session)
		if err != nil {
			return "", fmt.Errorf("fallback chat: %w", err)
		}
		reply := guard.Sanitize(text)
		s.record(ctx, session, types.RoleAssistant, reply)
		return reply, nil
	}

	return "", ErrAgentUnavailable
}

// StreamChat executes one turn and returns guarded text fragments as
// they arrive. The channel is closed at turn completion; producer
// failures surface as stream content, never as a late error.
func (s *Service) StreamChat(ctx context.Context, message string, session types.SessionID) (<-chan string, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	session = session.OrDefault()
	s.record(ctx, session, types.RoleUser, message)

	switch classify.Classify(message) {
	case classify.RouteTimeQuery:
		reply := s.timeResponse(message)
		s.record(ctx, session, types.RoleAssistant, reply)
		return oneShot(reply), nil
	case classify.RouteVerification:
		s.record(ctx, session, types.RoleAssistant, VerificationRefusal)
		return oneShot(VerificationRefusal), nil
	}

	if s.agentReady() {
		guarded := guard.Stream(bridge.Run(ctx, s.agent.Producer(englishOnlyInput(message), session)))
		return s.recordStream(ctx, session, guarded), nil
	}

	if s.allowFallback && s.worker != nil {
		deltas, err := s.worker.Stream(ctx, englishOnlyInput(message), session)
		if err != nil {
			return nil, fmt.Errorf("fallback stream: %w", err)
		}
		return s.recordStream(ctx, session, guard.Stream(deltas)), nil
	}

	return nil, ErrAgentUnavailable
}

// oneShot wraps a single complete answer as a stream.
func oneShot(text string) <-chan string {
	ch := make(chan string, 1)
	ch <- text
	close(ch)
	return ch
}

// record appends one transcript turn; recording failures are logged,
// never turn-fatal.
func (s *Service) record(ctx context.Context, session types.SessionID, role types.Role, text string) {
	if s.transcripts == nil || text == "" {
		return
	}
	err := s.transcripts.Append(ctx, &types.Turn{
		ID:        types.NewTurnID(),
		SessionID: session,
		Role:      role,
		Text:      text,
		At:        time.Now(),
	})
	if err != nil {
		slog.Warn("transcript append failed", "session_id", session, "error", err)
	}
}

// recordStream tees a guarded stream into the transcript, appending the
// accumulated assistant text once the stream ends.
func (s *Service) recordStream(ctx context.Context, session types.SessionID, in <-chan string) <-chan string {
	if s.transcripts == nil {
		return in
	}
	out := make(chan string)
	go func() {
		defer close(out)
		var buf strings.Builder
		for fragment := range in {
			buf.WriteString(fragment)
			select {
			case out <- fragment:
			case <-ctx.Done():
				// Consumer is gone; drain so upstream stages can finish.
				for range in {
				}
				return
			}
		}
		s.record(ctx, session, types.RoleAssistant, buf.String())
	}()
	return out
}
