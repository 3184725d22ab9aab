// Package commands implements the depcalc command line.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "depcalc",
		Short: "Compute asset depreciation schedules",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newScheduleCommand())
	rootCmd.AddCommand(newMethodsCommand())

	return rootCmd
}
