package todo

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{input: "low", want: PriorityLow},
		{input: "Medium", want: PriorityMedium},
		{input: " HIGH ", want: PriorityHigh},
		{input: "critical", want: PriorityCritical},
		{input: "urgent", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPriority) {
					t.Fatalf("expected ErrInvalidPriority, got %v", err)
				}
				if !strings.Contains(err.Error(), "low, medium, high, critical") {
					t.Fatalf("expected valid values in error, got %q", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("parse priority: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"todo":        StatusTodo,
		"InProgress":  StatusInProgress,
		"in-progress": StatusInProgress,
		"doing":       StatusInProgress,
		"done":        StatusDone,
		"completed":   StatusDone,
	}
	for input, want := range tests {
		got, err := ParseStatus(input)
		if err != nil {
			t.Fatalf("parse status %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("parse status %q: expected %v, got %v", input, want, got)
		}
	}

	if _, err := ParseStatus("blocked"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestPriorityOrdering(t *testing.T) {
	priorities := ValidPriorities()
	for i := 1; i < len(priorities); i++ {
		if priorities[i] <= priorities[i-1] {
			t.Fatalf("expected %v above %v", priorities[i], priorities[i-1])
		}
	}
	if Priority(0).IsValid() {
		t.Fatalf("expected zero priority to be invalid")
	}
}

func TestStatusString(t *testing.T) {
	if got := StatusInProgress.String(); got != "In Progress" {
		t.Fatalf("expected %q, got %q", "In Progress", got)
	}
	if got := StatusDone.String(); got != "Done" {
		t.Fatalf("expected %q, got %q", "Done", got)
	}
}

func TestPriorityJSON(t *testing.T) {
	data, err := json.Marshal(Task{Title: "x", Status: StatusTodo, Priority: PriorityHigh})
	if err != nil {
		t.Fatalf("marshal task: %v", err)
	}
	if !strings.Contains(string(data), `"priority":"High"`) {
		t.Fatalf("expected priority by name, got %s", data)
	}

	var decoded Task
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal task: %v", err)
	}
	if decoded.Priority != PriorityHigh {
		t.Fatalf("expected High, got %v", decoded.Priority)
	}

	if err := json.Unmarshal([]byte(`{"priority":"urgent"}`), &decoded); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  error
	}{
		{name: "ok", title: "Write report"},
		{name: "empty", title: "", want: ErrEmptyTitle},
		{name: "whitespace", title: " \n\t", want: ErrEmptyTitle},
		{name: "max length", title: strings.Repeat("a", MaxTitleLength)},
		{name: "too long", title: strings.Repeat("a", MaxTitleLength+1), want: ErrTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
