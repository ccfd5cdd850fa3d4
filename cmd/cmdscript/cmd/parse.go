package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdscript/foundation/script"
	"github.com/msto63/cmdscript/internal/tui"
)

var (
	parseInline []string
	parseIndent bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Prints the syntax tree of scripts",
	Long: `Parses scripts and prints the syntax tree without running them.

Examples:
  cmdscript parse --indent scripts/customers.cs
  cmdscript parse -e "execute service foo(1);"`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringArrayVarP(&parseInline, "expr", "e", nil, "script source to parse (repeatable)")
	parseCmd.Flags().BoolVar(&parseIndent, "indent", false, "indent the tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	sources, err := readSources(args, parseInline)
	if err != nil {
		return err
	}

	engine := script.NewEngine(script.Options{
		Logger:         appLogger,
		MaxInputLength: appConfig.Interpreter.MaxInputLength,
	})
	out := cmd.OutOrStdout()
	failed := false

	for _, src := range sources {
		if len(sources) > 1 {
			fmt.Fprintln(out, tui.RenderTitle(src.name))
		}
		root, err := engine.Parse(src.text)
		if err != nil {
			fmt.Fprintln(out, tui.RenderError(fmt.Sprintf("%s: %v", src.name, err)))
			failed = true
			continue
		}
		fmt.Fprintln(out, root.Dump(parseIndent))
	}

	if failed {
		return errScriptFailed
	}
	return nil
}
