// internal/worker/worker.go

// Package worker is the classic (non-agentic) chat path: a plain
// provider-backed backend with no tools and no event envelope, used when
// the primary agent is unavailable and fallback is allowed.
package worker

import (
	"context"
	"fmt"

	"github.com/dhirajp15/dhirux-workflows/internal/types"
	"github.com/dhirajp15/dhirux-workflows/pkg/llm"
)

// Worker dispatches chat turns to an LLM provider.
type Worker struct {
	provider     llm.Provider
	systemPrompt string
}

// New creates a Worker over the given provider.
func New(provider llm.Provider, systemPrompt string) *Worker {
	return &Worker{provider: provider, systemPrompt: systemPrompt}
}

func (w *Worker) messages(text string) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: w.systemPrompt},
		{Role: "user", Content: text},
	}
}

// Dispatch executes one turn and returns the full response text.
func (w *Worker) Dispatch(ctx context.Context, text string, session types.SessionID) (string, error) {
	ctx = llm.WithSession(ctx, string(session.OrDefault()))
	resp, err := w.provider.Complete(ctx, w.messages(text), nil)
	if err != nil {
		return "", fmt.Errorf("worker dispatch: %w", err)
	}
	return resp.Content, nil
}

// Stream executes one turn and returns its text deltas as a plain
// channel, closed at completion.
func (w *Worker) Stream(ctx context.Context, text string, session types.SessionID) (<-chan string, error) {
	ctx = llm.WithSession(ctx, string(session.OrDefault()))
	deltas, err := w.provider.Stream(ctx, w.messages(text), nil)
	if err != nil {
		return nil, fmt.Errorf("worker stream: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for delta := range deltas {
			if delta.Content == "" {
				continue
			}
			select {
			case out <- delta.Content:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
