package main

import (
	"strings"

	"github.com/amonks/flow/todo"
)

// priorityValue is a pflag.Value that accepts priority names and rejects
// anything else while flags are parsed.
type priorityValue struct {
	priority todo.Priority
}

func (v *priorityValue) String() string {
	if !v.priority.IsValid() {
		return ""
	}
	return strings.ToLower(v.priority.String())
}

func (v *priorityValue) Set(value string) error {
	priority, err := todo.ParsePriority(value)
	if err != nil {
		return err
	}
	v.priority = priority
	return nil
}

func (v *priorityValue) Type() string {
	return "priority"
}

// Or returns the parsed priority, or fallback when the flag was not set.
func (v *priorityValue) Or(fallback todo.Priority) todo.Priority {
	if v.priority.IsValid() {
		return v.priority
	}
	return fallback
}
