package todo

import (
	internalstrings "github.com/amonks/flow/internal/strings"
)

func lookupStatus(value string) (Status, bool) {
	switch internalstrings.NormalizeLowerTrimSpace(value) {
	case "todo":
		return StatusTodo, true
	case "inprogress", "in-progress", "in_progress", "in progress", "doing":
		return StatusInProgress, true
	case "done", "completed":
		return StatusDone, true
	default:
		return StatusTodo, false
	}
}

func lookupPriority(value string) (Priority, bool) {
	switch internalstrings.NormalizeLowerTrimSpace(value) {
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	case "critical":
		return PriorityCritical, true
	default:
		return DefaultPriority, false
	}
}
