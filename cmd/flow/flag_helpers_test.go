package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestHasChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "example"}
	cmd.Flags().String("title", "", "")
	cmd.Flags().String("content", "", "")

	if hasChangedFlags(cmd, "title", "content") {
		t.Fatal("expected no changed flags")
	}

	if err := cmd.Flags().Set("content", "hello"); err != nil {
		t.Fatalf("set content: %v", err)
	}

	if !hasChangedFlags(cmd, "title", "content") {
		t.Fatal("expected changed flags")
	}
}

func TestShouldUseEditor(t *testing.T) {
	tests := []struct {
		name        string
		hasFlags    bool
		edit        bool
		noEdit      bool
		interactive bool
		want        bool
	}{
		{name: "interactive without flags", interactive: true, want: true},
		{name: "interactive with flags", hasFlags: true, interactive: true, want: false},
		{name: "not interactive", want: false},
		{name: "forced", hasFlags: true, edit: true, want: true},
		{name: "suppressed", interactive: true, noEdit: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldUseEditor(tt.hasFlags, tt.edit, tt.noEdit, tt.interactive); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
