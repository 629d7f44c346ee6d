package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amonks/flow/todo"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check every stored task and note for unreadable values",
	Long: `Check every stored task and note for unreadable values.

Unreadable values are shown with safe defaults everywhere else. doctor lists
each one and exits with status 1 if it found any.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	s, err := openSessionWithReporter(nil)
	if err != nil {
		return err
	}
	defer s.Close()

	tasks, err := s.store.ListTasks(todo.AllScopes())
	if err != nil {
		return err
	}
	notes, err := s.store.ListNotes(todo.AllScopes())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	theme := newTheme(out)
	fmt.Fprintf(out, "Database: %s\n", s.store.Path())
	fmt.Fprintf(out, "Checked %d tasks and %d notes.\n", len(tasks), len(notes))

	issues := s.store.DecodeIssues()
	if len(issues) == 0 {
		fmt.Fprintln(out, "No problems found.")
		return nil
	}
	for _, issue := range issues {
		fmt.Fprintf(out, "%s %s\n", theme.Warning.Render("-"), issue)
	}
	return exitError{code: 1, err: fmt.Errorf("found %d unreadable values", len(issues))}
}
