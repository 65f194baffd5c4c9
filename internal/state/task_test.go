// internal/state/task_test.go
package state

import (
	"path/filepath"
	"testing"
)

func TestTaskStore(t *testing.T) {
	store := NewTaskStore(filepath.Join(t.TempDir(), "tasks.json"))

	tasks, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty list, got %d tasks", len(tasks))
	}

	task := &Task{
		Name:       "daily-summary",
		Prompt:     "Summarize the last day of transcripts.",
		Schedule:   "0 9 * * *",
		SessionKey: "task:daily-summary",
		Enabled:    true,
	}
	if err := store.Add(task); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(task); err == nil {
		t.Error("expected duplicate add to fail")
	}

	got, err := store.Get("daily-summary")
	if err != nil {
		t.Fatal(err)
	}
	if got.Prompt != task.Prompt {
		t.Errorf("unexpected prompt: %q", got.Prompt)
	}

	if err := store.SetEnabled("daily-summary", false); err != nil {
		t.Fatal(err)
	}
	got, err = store.Get("daily-summary")
	if err != nil {
		t.Fatal(err)
	}
	if got.Enabled {
		t.Error("expected task to be disabled")
	}

	if err := store.Remove("daily-summary"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get("daily-summary"); err == nil {
		t.Error("expected error for removed task")
	}
	if err := store.Remove("daily-summary"); err == nil {
		t.Error("expected error removing missing task")
	}
}
