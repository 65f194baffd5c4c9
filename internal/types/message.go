// internal/types/message.go
package types

import "strings"

// Role tags the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ContentBlock is one typed unit of message content. Blocks whose Type is
// not "text" are opaque to the orchestrator and contribute no text.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Message is one entry in a conversation: a role plus content blocks.
// Messages are treated as immutable once constructed.
type Message struct {
	Role   Role           `json:"role"`
	Blocks []ContentBlock `json:"content"`
}

// NewTextMessage builds a single-block text message.
func NewTextMessage(role Role, text string) Message {
	return Message{Role: role, Blocks: []ContentBlock{{Type: "text", Text: text}}}
}

// Text concatenates the message's text blocks, newline-separated,
// skipping empty and opaque blocks.
func (m Message) Text() string {
	parts := make([]string, 0, len(m.Blocks))
	for _, b := range m.Blocks {
		if b.Type != "text" {
			continue
		}
		if t := strings.TrimSpace(b.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// LastUserText returns the text of the most recent user message in the
// conversation, or "" when there is none.
func LastUserText(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Text()
		}
	}
	return ""
}
