// internal/bridge/bridge.go

// Package bridge runs an event-emitting response producer in a dedicated
// worker goroutine and relays its text deltas, in order, to a plain
// channel consumer. Producer failures become stream content rather than
// errors, so the consumer never sees a failure from the bridge itself.
package bridge

import (
	"context"

	"github.com/dhirajp15/dhirux-workflows/internal/types"
)

// Producer drives one streaming response to completion, emitting events
// as they are produced. Returning an error signals producer failure.
type Producer func(ctx context.Context, emit func(types.StreamEvent) error) error

// ErrorPrefix marks a diagnostic fragment injected when the producer
// fails mid-stream.
const ErrorPrefix = "\n[stream_error] "

// channelCapacity bounds the hand-off channel. An abandoned consumer
// blocks the worker after at most this many buffered fragments; context
// cancellation then reclaims it.
const channelCapacity = 16

// Run starts the producer on its own goroutine and returns the channel of
// text fragments. Fragments arrive in exactly the producer's emission
// order; only non-empty content deltas are forwarded. The channel is
// closed when the producer completes, and that close is the completion
// marker; there is no trailing error value. If the producer fails, one diagnostic
// fragment is delivered first.
func Run(ctx context.Context, produce Producer) <-chan string {
	out := make(chan string, channelCapacity)

	go func() {
		defer close(out)

		send := func(s string) bool {
			select {
			case out <- s:
				return true
			case <-ctx.Done():
				return false
			}
		}

		emit := func(event types.StreamEvent) error {
			if event.Type != types.EventContentDelta || event.Text == "" {
				return nil
			}
			if !send(event.Text) {
				return ctx.Err()
			}
			return nil
		}

		if err := produce(ctx, emit); err != nil && ctx.Err() == nil {
			send(ErrorPrefix + err.Error())
		}
	}()

	return out
}
