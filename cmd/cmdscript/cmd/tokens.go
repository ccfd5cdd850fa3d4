package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdscript/foundation/script"
	"github.com/msto63/cmdscript/foundation/utils/stringx"
)

var (
	tokensInline []string
	tokensRaw    bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [files...]",
	Short: "Prints the token stream of scripts",
	Long: `Prints the tokens the parser sees, one per line with line and
position. With --raw, whitespace and line ends are kept.`,
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringArrayVarP(&tokensInline, "expr", "e", nil, "script source to tokenize (repeatable)")
	tokensCmd.Flags().BoolVar(&tokensRaw, "raw", false, "keep whitespace and line end tokens")
}

func runTokens(cmd *cobra.Command, args []string) error {
	sources, err := readSources(args, tokensInline)
	if err != nil {
		return err
	}

	engine := script.NewEngine(script.Options{Logger: appLogger})
	out := cmd.OutOrStdout()

	for _, src := range sources {
		if len(sources) > 1 {
			fmt.Fprintf(out, "# %s\n", src.name)
		}
		for _, tok := range engine.Tokens(src.text, tokensRaw) {
			pos := fmt.Sprintf("%d:%d", tok.Line, tok.Pos)
			fmt.Fprintf(out, "%s %s\n", stringx.PadRight(pos, 8, ' '), tok.String())
		}
	}
	return nil
}
