package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/amonks/flow/internal/tasktui"
	"github.com/amonks/flow/internal/ui"
	"github.com/amonks/flow/todo"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive task list",
	Args:  cobra.NoArgs,
	RunE:  runUI,
}

var uiNoAltScreen bool

func init() {
	rootCmd.AddCommand(uiCmd)
	uiCmd.Flags().BoolVar(&uiNoAltScreen, "no-alt-screen", false, "Draw inline instead of on the alternate screen")
}

func runUI(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal(cmd.InOrStdin()) || !ui.IsTerminal(cmd.OutOrStdout()) {
		return errors.New("the interactive view needs a terminal; use `flow ls` instead")
	}

	reporter := newIssueReporter(cmd.ErrOrStderr(), quietFlag)
	s, err := openSessionWithReporter(reporter.Report)
	if err != nil {
		return err
	}
	defer s.Close()

	// Warn about the current rows before the view takes over the terminal.
	// Anything found while it runs is printed once it has exited.
	if _, err := s.store.ListTasks(todo.InScope(s.scope)); err != nil {
		return err
	}
	reporter.Hold()
	defer reporter.Release()

	return tasktui.Run(cmd.Context(), s.store, tasktui.Options{
		Scope:           s.scope,
		RefreshInterval: s.cfg.RefreshInterval(),
		Input:           cmd.InOrStdin(),
		Output:          cmd.OutOrStdout(),
		AltScreen:       !uiNoAltScreen,
	})
}
