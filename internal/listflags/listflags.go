// Package listflags defines the flags shared by list commands.
package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all flag that widens a listing to every scope.
func AddAllFlag(cmd *cobra.Command, target *bool, noun string) {
	usage := "List " + noun + " from every scope"
	if target == nil {
		cmd.Flags().BoolP("all", "a", false, usage)
		return
	}

	cmd.Flags().BoolVarP(target, "all", "a", false, usage)
}

// AddJSONFlag adds a shared --json flag.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("json", false, "Output as JSON")
		return
	}

	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}
