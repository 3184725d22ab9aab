package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/asset-engine/depreciation"
)

func newMethodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List supported depreciation methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range depreciation.Methods() {
				note := ""
				if m == depreciation.DecliningBalance {
					note = " (requires --rate)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", m, note)
			}
			return nil
		},
	}
}
