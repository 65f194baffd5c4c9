// internal/worker/worker_test.go
package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhirajp15/dhirux-workflows/pkg/llm"
)

type fakeProvider struct {
	content string
	deltas  []string
	session string
}

func (f *fakeProvider) Complete(ctx context.Context, messages []llm.Message, tools []llm.Tool) (*llm.Response, error) {
	f.session = llm.SessionFromContext(ctx)
	return &llm.Response{Content: f.content}, nil
}

func (f *fakeProvider) Stream(ctx context.Context, messages []llm.Message, tools []llm.Tool) (<-chan llm.Delta, error) {
	f.session = llm.SessionFromContext(ctx)
	ch := make(chan llm.Delta, len(f.deltas))
	for _, d := range f.deltas {
		ch <- llm.Delta{Content: d}
	}
	close(ch)
	return ch, nil
}

func TestDispatch(t *testing.T) {
	provider := &fakeProvider{content: "classic answer"}
	w := New(provider, "policy prompt")

	got, err := w.Dispatch(context.Background(), "hello", "sess-9")
	require.NoError(t, err)
	require.Equal(t, "classic answer", got)
	require.Equal(t, "sess-9", provider.session)
}

func TestStreamDeltas(t *testing.T) {
	provider := &fakeProvider{deltas: []string{"one ", "", "two"}}
	w := New(provider, "policy prompt")

	stream, err := w.Stream(context.Background(), "hello", "")
	require.NoError(t, err)

	var got []string
	for s := range stream {
		got = append(got, s)
	}
	// Empty deltas are skipped, order preserved.
	require.Equal(t, []string{"one ", "two"}, got)
	require.Equal(t, "agentic-default", provider.session)
}
