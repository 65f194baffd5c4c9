// internal/agent/clock_tool.go
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dhirajp15/dhirux-workflows/internal/clock"
)

// ClockTool exposes the UTC clock to the model as current_time_utc.
type ClockTool struct {
	clock *clock.Clock
}

// NewClockTool creates the clock tool over the given time source.
func NewClockTool(c *clock.Clock) *ClockTool {
	return &ClockTool{clock: c}
}

func (t *ClockTool) Name() string        { return "current_time_utc" }
func (t *ClockTool) Description() string { return "Return the current time in UTC" }
func (t *ClockTool) Parameters() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *ClockTool) Execute(_ context.Context, _ json.RawMessage) (string, error) {
	data, err := json.Marshal(t.clock.Now())
	if err != nil {
		return "", fmt.Errorf("marshal reading: %w", err)
	}
	return string(data), nil
}
