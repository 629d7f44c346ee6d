package main

import "testing"

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "flow" {
		t.Fatalf("expected root command name flow, got %q", rootCmd.Use)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	want := []string{"add", "ls", "done", "start", "reopen", "rm", "ui", "note", "doctor", "config"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == rootCmd {
			t.Fatalf("expected subcommand %q to be registered", name)
		}
	}
}
