package todo

import (
	"errors"
	"testing"
)

func TestCompleteTask_IsIdempotent(t *testing.T) {
	store := openTestStore(t, Options{})
	task := mustAddTask(t, store, Task{Title: "Finish me"})

	for i := 0; i < 2; i++ {
		if err := store.CompleteTask(task.ID); err != nil {
			t.Fatalf("complete task (attempt %d): %v", i+1, err)
		}
		got, err := store.GetTask(task.ID)
		if err != nil {
			t.Fatalf("get task: %v", err)
		}
		if got.Status != StatusDone {
			t.Fatalf("attempt %d: expected Done, got %v", i+1, got.Status)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	store := openTestStore(t, Options{})
	task := mustAddTask(t, store, Task{Title: "Cycle"})

	steps := []struct {
		name string
		op   func(int64) error
		want Status
	}{
		{name: "start", op: store.StartTask, want: StatusInProgress},
		{name: "complete", op: store.CompleteTask, want: StatusDone},
		{name: "reopen", op: store.ReopenTask, want: StatusTodo},
	}

	for _, step := range steps {
		if err := step.op(task.ID); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		got, err := store.GetTask(task.ID)
		if err != nil {
			t.Fatalf("get task: %v", err)
		}
		if got.Status != step.want {
			t.Fatalf("after %s: expected %v, got %v", step.name, step.want, got.Status)
		}
	}
}

func TestMissingIDs_IgnoredByDefault(t *testing.T) {
	store := openTestStore(t, Options{})
	existing := mustAddTask(t, store, Task{Title: "Untouched"})

	if err := store.CompleteTask(9999); err != nil {
		t.Fatalf("complete missing task: %v", err)
	}
	if err := store.DeleteTask(9999); err != nil {
		t.Fatalf("delete missing task: %v", err)
	}
	if err := store.DeleteTask(existing.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if err := store.DeleteTask(existing.ID); err != nil {
		t.Fatalf("delete already deleted task: %v", err)
	}
	if err := store.DeleteNote(9999); err != nil {
		t.Fatalf("delete missing note: %v", err)
	}
	if err := store.UpdateNote(9999, NoteUpdate{Title: strPtr("x")}); err != nil {
		t.Fatalf("update missing note: %v", err)
	}
}

func TestCompleteMissingTask_DoesNotMutateOthers(t *testing.T) {
	store := openTestStore(t, Options{})
	existing := mustAddTask(t, store, Task{Title: "Keep me"})

	if err := store.CompleteTask(9999); err != nil {
		t.Fatalf("complete missing task: %v", err)
	}

	got, err := store.GetTask(existing.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Status != StatusTodo {
		t.Fatalf("expected existing task to stay Todo, got %v", got.Status)
	}
}

func TestMissingIDs_Rejected(t *testing.T) {
	store := openTestStore(t, Options{MissingIDs: RejectMissing})

	taskOps := map[string]func(int64) error{
		"complete": store.CompleteTask,
		"start":    store.StartTask,
		"reopen":   store.ReopenTask,
		"delete":   store.DeleteTask,
	}
	for name, op := range taskOps {
		t.Run(name, func(t *testing.T) {
			if err := op(42); !errors.Is(err, ErrTaskNotFound) {
				t.Fatalf("expected ErrTaskNotFound, got %v", err)
			}
		})
	}

	if err := store.DeleteNote(42); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound from delete, got %v", err)
	}
	if err := store.UpdateNote(42, NoteUpdate{}); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound from update, got %v", err)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	store := openTestStore(t, Options{})

	if _, err := store.GetTask(1); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func strPtr(value string) *string {
	return &value
}
