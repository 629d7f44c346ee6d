package todo

import "time"

// Task represents a single task.
type Task struct {
	// ID is assigned by the store on insert. Zero means not yet persisted.
	ID int64 `json:"id"`

	// Title is the short summary of the task (max 500 chars).
	Title string `json:"title"`

	// Description provides additional context about the task.
	Description string `json:"description,omitempty"`

	// Status is the current state of the task.
	Status Status `json:"status"`

	// Priority is the importance level.
	Priority Priority `json:"priority"`

	// DueDate is when the task is due (nil if it has no due date).
	DueDate *time.Time `json:"due_date,omitempty"`

	// ProjectPath is the scope the task was created in. It never changes.
	ProjectPath string `json:"project_path,omitempty"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`

	// Tags are free-form labels in the order they were given.
	Tags []string `json:"tags"`
}

// IsDone reports whether the task has been completed.
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// Note represents a free-form note.
type Note struct {
	// ID is assigned by the store on insert. Zero means not yet persisted.
	ID int64 `json:"id"`

	// Title is the short summary of the note.
	Title string `json:"title"`

	// Content is the body of the note (markdown).
	Content string `json:"content,omitempty"`

	// ProjectPath is the scope the note was created in. It never changes.
	ProjectPath string `json:"project_path,omitempty"`

	// CreatedAt is when the note was created.
	CreatedAt time.Time `json:"created_at"`

	// Tags are free-form labels in the order they were given.
	Tags []string `json:"tags"`
}

// Filter selects records by scope.
type Filter struct {
	// Scope restricts results to records created in exactly this scope.
	// Nil returns records from every scope.
	Scope *string
}

// InScope returns a filter matching records created in scope.
func InScope(scope string) Filter {
	return Filter{Scope: &scope}
}

// AllScopes returns a filter matching every record.
func AllScopes() Filter {
	return Filter{}
}
