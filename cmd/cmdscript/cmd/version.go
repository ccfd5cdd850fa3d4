package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdscript/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Shows the version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.String())
		for _, name := range []string{"language", "interpreter", "catalog", "console"} {
			fmt.Fprintf(out, "  %-12s %s\n", name+":", version.ComponentVersion(name))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
