package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdscript/internal/tui"
)

var checkInline []string

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Checks scripts against the catalog",
	Long: `Parses scripts and verifies that every referenced service and form
is defined in the catalog. Nothing is executed. The command exits with
status 1 when a script does not parse or references an unknown id.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringArrayVarP(&checkInline, "expr", "e", nil, "script source to check (repeatable)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	sources, err := readSources(args, checkInline)
	if err != nil {
		return err
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}
	engine := newEngine(c, false, 0)

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()
	failed := false

	for _, src := range sources {
		problems, err := engine.Check(ctx, src.text)
		if err != nil {
			fmt.Fprintln(out, tui.RenderError(fmt.Sprintf("%s: %v", src.name, err)))
			failed = true
			continue
		}
		for _, p := range problems {
			fmt.Fprintln(out, tui.RenderError(fmt.Sprintf("%s:%d:%d: %s %s: %v",
				src.name, p.Reference.Line, p.Reference.Pos+1, p.Reference.Kind, p.Reference.ID, p.Err)))
		}
		if len(problems) > 0 {
			failed = true
			continue
		}
		fmt.Fprintln(out, tui.StatusOKStyle.Render("ok")+" "+src.name)
	}

	if failed {
		return errScriptFailed
	}
	return nil
}
