package main

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"

	"github.com/amonks/flow/todo"
)

func TestPriorityValue(t *testing.T) {
	var value priorityValue
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.VarP(&value, "priority", "p", "")

	if got := value.Or(todo.PriorityLow); got != todo.PriorityLow {
		t.Fatalf("expected fallback before parse, got %v", got)
	}

	if err := flags.Parse([]string{"-p", "HIGH"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if got := value.Or(todo.PriorityLow); got != todo.PriorityHigh {
		t.Fatalf("expected High, got %v", got)
	}
	if value.String() != "high" {
		t.Fatalf("expected string high, got %q", value.String())
	}
}

func TestPriorityValue_RejectsUnknown(t *testing.T) {
	var value priorityValue
	if err := value.Set("urgent"); !errors.Is(err, todo.ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	if value.String() != "" {
		t.Fatalf("expected unset value, got %q", value.String())
	}
}
