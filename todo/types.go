// Package todo implements a personal task and note tracker backed by a local
// SQLite database.
//
// Every record remembers the project scope it was created in (usually the
// root of the enclosing repository). Listing with a scope returns only the
// records whose stored scope matches exactly; listing without one returns
// everything.
//
// The public API mirrors the CLI commands:
//   - AddTask, CompleteTask, StartTask, ReopenTask, DeleteTask for the task lifecycle
//   - ListTasks, GetTask for querying tasks
//   - AddNote, UpdateNote, DeleteNote, ListNotes, GetNote for notes
package todo

import (
	"fmt"

	"github.com/amonks/flow/internal/validation"
)

// Status represents the state of a task.
type Status string

const (
	// StatusTodo indicates the task has not been started. It is the default.
	StatusTodo Status = "Todo"

	// StatusInProgress indicates the task is being worked on.
	StatusInProgress Status = "InProgress"

	// StatusDone indicates the task has been completed.
	StatusDone Status = "Done"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// String returns the display name of the status.
func (s Status) String() string {
	if s == StatusInProgress {
		return "In Progress"
	}
	return string(s)
}

// Priority is the importance of a task. Higher values are more important.
// The zero value means "unset" and is replaced by DefaultPriority on insert.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// DefaultPriority is used when no priority is given.
const DefaultPriority = PriorityMedium

// ValidPriorities returns all priorities from least to most important.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// IsValid returns true if the priority is a known level.
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

// String returns the display (and storage) name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityCritical:
		return "Critical"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// MarshalText encodes the priority by name.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a priority name, rejecting unknown levels.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePriority parses a priority name (case-insensitive).
func ParsePriority(value string) (Priority, error) {
	priority, ok := lookupPriority(value)
	if !ok {
		return DefaultPriority, fmt.Errorf("%w: %q (expected %s)", ErrInvalidPriority, value, priorityNames())
	}
	return priority, nil
}

// ParseStatus parses a status name (case-insensitive), accepting the usual
// spellings of "in progress".
func ParseStatus(value string) (Status, error) {
	status, ok := lookupStatus(value)
	if !ok {
		return StatusTodo, validation.FormatInvalidValueError(ErrInvalidStatus, Status(value), ValidStatuses())
	}
	return status, nil
}

func priorityNames() string {
	return validation.FormatValidStringers(ValidPriorities())
}

// MaxTitleLength is the maximum allowed length for a task or note title.
const MaxTitleLength = 500
