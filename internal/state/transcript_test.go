// internal/state/transcript_test.go
package state

import (
	"context"
	"testing"
	"time"

	"github.com/dhirajp15/dhirux-workflows/internal/types"
)

func TestTranscriptStore(t *testing.T) {
	dir := t.TempDir()
	store := NewTranscriptStore(dir)
	ctx := context.Background()

	sessionID := types.NewSessionID()

	turn := &types.Turn{
		ID:        types.NewTurnID(),
		SessionID: sessionID,
		Role:      types.RoleUser,
		Text:      "hello",
		Source:    "test",
		At:        time.Now(),
	}
	if err := store.Append(ctx, turn); err != nil {
		t.Fatal(err)
	}
	if turn.Seq != 1 {
		t.Errorf("expected seq 1, got %d", turn.Seq)
	}

	reply := &types.Turn{
		ID:        types.NewTurnID(),
		SessionID: sessionID,
		Role:      types.RoleAssistant,
		Text:      "hi there",
		At:        time.Now(),
	}
	if err := store.Append(ctx, reply); err != nil {
		t.Fatal(err)
	}
	if reply.Seq != 2 {
		t.Errorf("expected seq 2, got %d", reply.Seq)
	}

	turns, err := store.Tail(ctx, sessionID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Text != "hello" || turns[1].Text != "hi there" {
		t.Errorf("unexpected order: %q then %q", turns[0].Text, turns[1].Text)
	}

	count, err := store.Count(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
}

func TestTranscriptStoreTailLimit(t *testing.T) {
	dir := t.TempDir()
	store := NewTranscriptStore(dir)
	ctx := context.Background()

	sessionID := types.NewSessionID()
	for _, text := range []string{"one", "two", "three"} {
		err := store.Append(ctx, &types.Turn{
			ID:        types.NewTurnID(),
			SessionID: sessionID,
			Role:      types.RoleUser,
			Text:      text,
			At:        time.Now(),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	turns, err := store.Tail(ctx, sessionID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Text != "two" || turns[1].Text != "three" {
		t.Errorf("expected last two turns, got %q and %q", turns[0].Text, turns[1].Text)
	}
}

func TestTranscriptStoreEmptySession(t *testing.T) {
	store := NewTranscriptStore(t.TempDir())
	ctx := context.Background()

	turns, err := store.Tail(ctx, "no-such-session", 5)
	if err != nil {
		t.Fatal(err)
	}
	if turns != nil {
		t.Errorf("expected nil turns, got %v", turns)
	}

	count, err := store.Count(ctx, "no-such-session")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
}
