// internal/bridge/bridge_test.go
package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dhirajp15/dhirux-workflows/internal/types"
)

func collect(ch <-chan string) []string {
	var out []string
	for s := range ch {
		out = append(out, s)
	}
	return out
}

func TestRunPreservesEmissionOrder(t *testing.T) {
	producer := func(ctx context.Context, emit func(types.StreamEvent) error) error {
		for _, s := range []string{"a", "b", "c"} {
			if err := emit(types.Delta(s)); err != nil {
				return err
			}
		}
		return nil
	}

	got := collect(Run(context.Background(), producer))
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestRunIgnoresStructuralEvents(t *testing.T) {
	producer := func(ctx context.Context, emit func(types.StreamEvent) error) error {
		_ = emit(types.StreamEvent{Type: types.EventMessageStart})
		_ = emit(types.Delta("payload"))
		_ = emit(types.Delta("")) // empty deltas are dropped
		_ = emit(types.StreamEvent{Type: types.EventContentStop})
		_ = emit(types.StreamEvent{Type: types.EventMessageStop, StopReason: "end_turn"})
		_ = emit(types.StreamEvent{Type: types.EventMetadata, Usage: &types.Usage{TotalTokens: 2}})
		return nil
	}

	got := collect(Run(context.Background(), producer))
	require.Equal(t, []string{"payload"}, got)
}

func TestRunProducerErrorBecomesFragment(t *testing.T) {
	producer := func(ctx context.Context, emit func(types.StreamEvent) error) error {
		if err := emit(types.Delta("a")); err != nil {
			return err
		}
		return errors.New("backend exploded")
	}

	got := collect(Run(context.Background(), producer))
	require.Equal(t, []string{"a", ErrorPrefix + "backend exploded"}, got)
}

func TestRunEmptyProducer(t *testing.T) {
	producer := func(ctx context.Context, emit func(types.StreamEvent) error) error {
		return nil
	}
	require.Empty(t, collect(Run(context.Background(), producer)))
}

func TestRunAbandonedConsumerUnblocksWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	workerDone := make(chan struct{})
	producer := func(ctx context.Context, emit func(types.StreamEvent) error) error {
		defer close(workerDone)
		// Emit far more than the channel capacity with no consumer.
		for i := 0; i < 1000; i++ {
			if err := emit(types.Delta("x")); err != nil {
				return err
			}
		}
		return nil
	}

	_ = Run(ctx, producer) // nobody reads
	cancel()

	select {
	case <-workerDone:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not exit after consumer abandonment")
	}
}
