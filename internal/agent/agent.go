// internal/agent/agent.go

// Package agent wraps the primary conversational model behind a one-shot
// call and an event-emitting streaming producer. A capability probe
// reports readiness without ever failing, so unavailability can silently
// reroute to the fallback worker.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/dhirajp15/dhirux-workflows/internal/bridge"
	"github.com/dhirajp15/dhirux-workflows/internal/types"
	"github.com/dhirajp15/dhirux-workflows/pkg/llm"
)

// toolRounds bounds the invoke loop: the model may chain at most this
// many tool-call rounds before the turn is cut off.
const toolRounds = 4

// Agent is the primary agent backend.
type Agent struct {
	provider     llm.Provider
	config       *llm.Config
	systemPrompt string
	modelID      string
	registry     *Registry
	tokenizer    *tiktoken.Tiktoken
}

// New creates an Agent. The tokenizer for the model id is used to compute
// usage metadata on streamed turns; unknown model ids fall back to
// cl100k_base.
func New(provider llm.Provider, config *llm.Config, systemPrompt, modelID string, registry *Registry) (*Agent, error) {
	enc, err := tiktoken.EncodingForModel(modelID)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("get tokenizer: %w", err)
		}
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &Agent{
		provider:     provider,
		config:       config,
		systemPrompt: systemPrompt,
		modelID:      modelID,
		registry:     registry,
		tokenizer:    enc,
	}, nil
}

// Ready is the capability probe: true when the agent can reach its model.
// It never panics and never returns an error; a nil or unconfigured agent
// simply reports false.
func (a *Agent) Ready() bool {
	return a != nil && a.provider != nil && a.config.Configured()
}

func (a *Agent) countTokens(text string) int {
	return len(a.tokenizer.Encode(text, nil, nil))
}

func (a *Agent) messages(text string) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: a.systemPrompt},
		{Role: "user", Content: text},
	}
}

// Invoke executes one agent turn and returns its text output, running
// tool-call rounds (at most toolRounds) as the model requests them.
func (a *Agent) Invoke(ctx context.Context, text string, session types.SessionID) (string, error) {
	ctx = llm.WithSession(ctx, string(session.OrDefault()))
	messages := a.messages(text)
	tools := a.registry.AsLLMTools()

	for round := 0; round < toolRounds; round++ {
		resp, err := a.provider.Complete(ctx, messages, tools)
		if err != nil {
			return "", fmt.Errorf("agent turn: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}

		messages = append(messages, llm.Message{Role: "assistant", Content: resp.Content, Tools: resp.ToolCalls})
		for _, call := range resp.ToolCalls {
			result := a.executeTool(ctx, call)
			messages = append(messages, llm.Message{
				Role:    "tool",
				Content: result,
				Tools:   []llm.ToolCall{{ID: call.ID}},
			})
		}
	}

	return "", fmt.Errorf("agent turn: tool round limit (%d) exceeded", toolRounds)
}

// executeTool runs one requested tool call; failures become result text
// the model can see rather than turn-ending errors.
func (a *Agent) executeTool(ctx context.Context, call llm.ToolCall) string {
	tool, ok := a.registry.Get(call.Function.Name)
	if !ok {
		return fmt.Sprintf("unknown tool: %s", call.Function.Name)
	}
	args := call.Function.Arguments
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	result, err := tool.Execute(ctx, args)
	if err != nil {
		slog.Warn("tool execution failed", "tool", call.Function.Name, "error", err)
		return fmt.Sprintf("tool error: %v", err)
	}
	return result
}

// Producer returns the streaming producer for one agent turn, suitable
// for the stream bridge. The event sequence is message_start, one
// content_delta per non-empty model delta, content_stop, message_stop,
// and a final metadata event carrying tokenizer-computed usage and the
// turn latency.
func (a *Agent) Producer(text string, session types.SessionID) bridge.Producer {
	return func(ctx context.Context, emit func(types.StreamEvent) error) error {
		ctx = llm.WithSession(ctx, string(session.OrDefault()))

		start := time.Now()
		if err := emit(types.StreamEvent{Type: types.EventMessageStart}); err != nil {
			return err
		}

		stream, err := a.provider.Stream(ctx, a.messages(text), a.registry.AsLLMTools())
		if err != nil {
			return fmt.Errorf("open agent stream: %w", err)
		}

		var out string
		for delta := range stream {
			if delta.Content == "" {
				continue
			}
			out += delta.Content
			if err := emit(types.Delta(delta.Content)); err != nil {
				return err
			}
		}

		if err := emit(types.StreamEvent{Type: types.EventContentStop}); err != nil {
			return err
		}
		if err := emit(types.StreamEvent{Type: types.EventMessageStop, StopReason: "end_turn"}); err != nil {
			return err
		}

		inTokens := a.countTokens(text)
		outTokens := 0
		if out != "" {
			outTokens = a.countTokens(out)
		}
		return emit(types.StreamEvent{
			Type: types.EventMetadata,
			Usage: &types.Usage{
				InputTokens:  inTokens,
				OutputTokens: outTokens,
				TotalTokens:  inTokens + outTokens,
			},
			LatencyMS: time.Since(start).Milliseconds(),
		})
	}
}
