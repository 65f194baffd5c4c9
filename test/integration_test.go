//go:build integration

package test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dhirajp15/dhirux-workflows/internal/agentic"
	"github.com/dhirajp15/dhirux-workflows/internal/bridge"
	"github.com/dhirajp15/dhirux-workflows/internal/dispatch"
	"github.com/dhirajp15/dhirux-workflows/internal/state"
	"github.com/dhirajp15/dhirux-workflows/internal/types"
)

// echoAgent is a minimal backend that echoes its input prefix.
type echoAgent struct{}

func (echoAgent) Ready() bool { return true }

func (echoAgent) Invoke(_ context.Context, text string, _ types.SessionID) (string, error) {
	return "echo: " + text, nil
}

func (echoAgent) Producer(text string, _ types.SessionID) bridge.Producer {
	return func(_ context.Context, emit func(types.StreamEvent) error) error {
		return emit(types.Delta("echo: " + text))
	}
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()

	sessions := state.NewSessionStore(dir)
	transcripts := state.NewTranscriptStore(dir)

	service := agentic.NewService(agentic.Options{
		Enabled:     true,
		Agent:       echoAgent{},
		Transcripts: transcripts,
	})

	ctx := context.Background()
	queue := dispatch.NewQueue(2)
	queue.Start(ctx)
	defer queue.Stop()

	queue.SetProcessor(func(turn *dispatch.Turn) error {
		resp, err := service.Chat(turn.Ctx, turn.Text, turn.SessionID)
		if err != nil {
			return err
		}
		if turn.OnComplete != nil {
			turn.OnComplete(resp)
		}
		return nil
	})

	sid, err := sessions.ResolveOrCreate(ctx, types.NewSessionKey("test", "user1"))
	if err != nil {
		t.Fatal(err)
	}

	responses := make(chan string, 3)
	for i := 0; i < 3; i++ {
		turn := dispatch.NewTurn(sid, fmt.Sprintf("message %d please", i), "test")
		turn.OnComplete = func(response string) { responses <- response }
		if err := queue.Enqueue(turn); err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 3; i++ {
		select {
		case <-responses:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for responses")
		}
	}

	if !queue.WaitIdle(5 * time.Second) {
		t.Fatal("queue did not drain")
	}

	// Each processed turn records a user and an assistant entry.
	count, err := transcripts.Count(ctx, sid)
	if err != nil {
		t.Fatal(err)
	}
	if count != 6 {
		t.Errorf("expected 6 transcript turns, got %d", count)
	}

	turns, err := transcripts.Tail(ctx, sid, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i, turn := range turns {
		wantRole := types.RoleUser
		if i%2 == 1 {
			wantRole = types.RoleAssistant
		}
		if turn.Role != wantRole {
			t.Errorf("turn %d: expected role %s, got %s", i, wantRole, turn.Role)
		}
	}
}
