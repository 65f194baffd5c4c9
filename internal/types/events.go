// internal/types/events.go
package types

// StreamEventType tags one structural unit emitted by the primary agent's
// streaming producer.
type StreamEventType string

const (
	EventMessageStart StreamEventType = "message_start"
	EventContentDelta StreamEventType = "content_delta"
	EventContentStop  StreamEventType = "content_stop"
	EventMessageStop  StreamEventType = "message_stop"
	EventMetadata     StreamEventType = "metadata"
)

// StreamEvent is the tagged union flowing out of the agent producer.
// Only content_delta carries text the stream bridge forwards; the other
// tags are structural.
type StreamEvent struct {
	Type       StreamEventType `json:"type"`
	Text       string          `json:"text,omitempty"`        // content_delta
	StopReason string          `json:"stop_reason,omitempty"` // message_stop
	Usage      *Usage          `json:"usage,omitempty"`       // metadata
	LatencyMS  int64           `json:"latency_ms,omitempty"`  // metadata
}

// Usage tracks token consumption for one agent turn.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Delta builds a content_delta event.
func Delta(text string) StreamEvent {
	return StreamEvent{Type: EventContentDelta, Text: text}
}
