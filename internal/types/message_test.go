// internal/types/message_test.go
package types

import (
	"testing"
)

func TestLastUserText(t *testing.T) {
	messages := []Message{
		NewTextMessage(RoleSystem, "policy prompt"),
		NewTextMessage(RoleUser, "first question"),
		NewTextMessage(RoleAssistant, "first answer"),
		{
			Role: RoleUser,
			Blocks: []ContentBlock{
				{Type: "text", Text: "part one"},
				{Type: "image", Text: "ignored"},
				{Type: "text", Text: "part two"},
			},
		},
	}

	got := LastUserText(messages)
	want := "part one\npart two"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLastUserTextNoUserMessage(t *testing.T) {
	messages := []Message{
		NewTextMessage(RoleAssistant, "hello"),
	}
	if got := LastUserText(messages); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSessionKeyFormat(t *testing.T) {
	key := NewSessionKey("telegram", "123", "456")
	expected := SessionKey("telegram:123:456")
	if key != expected {
		t.Errorf("expected %s, got %s", expected, key)
	}
}

func TestSessionIDOrDefault(t *testing.T) {
	if got := SessionID("").OrDefault(); got != DefaultSessionID {
		t.Errorf("expected %s, got %s", DefaultSessionID, got)
	}
	if got := SessionID("abc").OrDefault(); got != "abc" {
		t.Errorf("expected abc, got %s", got)
	}
}

func TestNewSessionID(t *testing.T) {
	id := NewSessionID()
	if id == "" {
		t.Error("expected non-empty SessionID")
	}
	if len(string(id)) != 36 {
		t.Errorf("expected UUID format, got %s", id)
	}
}
