package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Shows the effective configuration",
	Long:  "Prints the configuration after defaults, environment variables and flags were applied.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if path := appConfig.Path(); path != "" {
			fmt.Fprintf(out, "# loaded from %s\n", path)
		} else {
			fmt.Fprintln(out, "# built-in defaults")
		}
		text, err := appConfig.Encode()
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
