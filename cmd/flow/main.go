// Package main implements the flow CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flow",
	Short: "Project-scoped tasks and notes",
	Long: `flow tracks tasks and notes per project.

Records are scoped to the enclosing repository root, or to the working
directory outside a repository. Run flow with no command to open the
interactive task list.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runUI,
}

var quietFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Do not print warnings about unreadable stored values")
}
