package todo

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDecode_FallsBackOnCorruptTaskColumns(t *testing.T) {
	var seen []DecodeIssue
	store := openTestStore(t, Options{OnDecodeIssue: func(issue DecodeIssue) {
		seen = append(seen, issue)
	}})

	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	task := mustAddTask(t, store, Task{Title: "Broken", Priority: PriorityHigh, DueDate: &due, Tags: []string{"x"}})

	corrupt(t, store, "tasks", "status", task.ID, "Blocked")
	corrupt(t, store, "tasks", "priority", task.ID, "urgent")
	corrupt(t, store, "tasks", "due_date", task.ID, "next week")
	corrupt(t, store, "tasks", "created_at", task.ID, "yesterday")
	corrupt(t, store, "tasks", "tags", task.ID, "not json")

	got, err := store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}

	want := Task{
		ID:        task.ID,
		Title:     "Broken",
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		CreatedAt: testNow,
		Tags:      []string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("task mismatch (-want +got):\n%s", diff)
	}

	wantIssues := []DecodeIssue{
		{Kind: KindTask, RecordID: task.ID, Column: "status", Value: "Blocked", Fallback: "Todo"},
		{Kind: KindTask, RecordID: task.ID, Column: "priority", Value: "urgent", Fallback: "Medium"},
		{Kind: KindTask, RecordID: task.ID, Column: "due_date", Value: "next week", Fallback: "no due date"},
		{Kind: KindTask, RecordID: task.ID, Column: "created_at", Value: "yesterday", Fallback: "current time"},
		{Kind: KindTask, RecordID: task.ID, Column: "tags", Value: "not json", Fallback: "no tags"},
	}
	if diff := cmp.Diff(wantIssues, store.DecodeIssues()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantIssues, seen); diff != "" {
		t.Fatalf("hook issues mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_CorruptRowDoesNotHideOthers(t *testing.T) {
	store := openTestStore(t, Options{})

	good := mustAddTask(t, store, Task{Title: "good"})
	bad := mustAddTask(t, store, Task{Title: "bad"})
	corrupt(t, store, "tasks", "status", bad.ID, 42)

	tasks, err := store.ListTasks(AllScopes())
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if diff := cmp.Diff([]string{"good", "bad"}, taskTitles(tasks)); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
	if tasks[0].ID != good.ID || tasks[1].Status != StatusTodo {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
	if issues := store.DecodeIssues(); len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}

	store.ResetDecodeIssues()
	if issues := store.DecodeIssues(); len(issues) != 0 {
		t.Fatalf("expected reset to clear issues, got %v", issues)
	}
}

func TestDecode_ReportsEachIssueOnce(t *testing.T) {
	calls := 0
	store := openTestStore(t, Options{OnDecodeIssue: func(DecodeIssue) { calls++ }})
	task := mustAddTask(t, store, Task{Title: "noisy"})
	corrupt(t, store, "tasks", "priority", task.ID, "urgent!!")

	for range 3 {
		if _, err := store.ListTasks(AllScopes()); err != nil {
			t.Fatalf("list tasks: %v", err)
		}
	}
	if _, err := store.GetTask(task.ID); err != nil {
		t.Fatalf("get task: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected the hook to fire once, got %d", calls)
	}
	if issues := store.DecodeIssues(); len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}

	corrupt(t, store, "tasks", "priority", task.ID, "urgent!!!")
	if _, err := store.ListTasks(AllScopes()); err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected a changed value to be reported, got %d calls", calls)
	}

	store.ResetDecodeIssues()
	if _, err := store.ListTasks(AllScopes()); err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected reset to allow reporting again, got %d calls", calls)
	}
}

func TestDecode_AcceptsLegacySpellings(t *testing.T) {
	store := openTestStore(t, Options{})
	task := mustAddTask(t, store, Task{Title: "legacy"})

	corrupt(t, store, "tasks", "status", task.ID, "in progress")
	corrupt(t, store, "tasks", "priority", task.ID, "CRITICAL")

	got, err := store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Status != StatusInProgress || got.Priority != PriorityCritical {
		t.Fatalf("expected InProgress/Critical, got %v/%v", got.Status, got.Priority)
	}
	if issues := store.DecodeIssues(); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestDecode_EmptyTagsAreNotIssues(t *testing.T) {
	store := openTestStore(t, Options{})
	note := mustAddNote(t, store, Note{Title: "bare"})

	for _, value := range []any{nil, "", "null"} {
		corrupt(t, store, "notes", "tags", note.ID, value)
		got, err := store.GetNote(note.ID)
		if err != nil {
			t.Fatalf("get note: %v", err)
		}
		if got.Tags == nil || len(got.Tags) != 0 {
			t.Fatalf("tags %v: expected empty non-nil tags, got %#v", value, got.Tags)
		}
	}
	if issues := store.DecodeIssues(); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestDecodeIssue_String(t *testing.T) {
	issue := DecodeIssue{Kind: KindTask, RecordID: 3, Column: "status", Value: "X", Fallback: "Todo"}

	want := `task 3: unreadable status "X", using Todo`
	if got := issue.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
