package todo

import (
	"path/filepath"
	"testing"
	"time"
)

var testNow = time.Date(2026, 1, 20, 10, 30, 0, 0, time.Local)

func openTestStore(t testing.TB, opts Options) *Store {
	t.Helper()

	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	store, err := Open(filepath.Join(t.TempDir(), DatabaseFile), opts)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func mustAddTask(t testing.TB, store *Store, task Task) Task {
	t.Helper()

	if _, err := store.AddTask(&task); err != nil {
		t.Fatalf("add task %q: %v", task.Title, err)
	}
	return task
}

func mustAddNote(t testing.TB, store *Store, note Note) Note {
	t.Helper()

	if _, err := store.AddNote(&note); err != nil {
		t.Fatalf("add note %q: %v", note.Title, err)
	}
	return note
}

func taskTitles(tasks []Task) []string {
	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	return titles
}

// corrupt writes a raw value into a column, bypassing encoding.
func corrupt(t testing.TB, store *Store, table, column string, id int64, value any) {
	t.Helper()

	if _, err := store.db.Exec(`UPDATE `+table+` SET `+column+` = ? WHERE id = ?`, value, id); err != nil {
		t.Fatalf("corrupt %s.%s: %v", table, column, err)
	}
}
