package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdscript/foundation/script/interp"
	"github.com/msto63/cmdscript/internal/tui"
)

var (
	runInline          []string
	runContinueOnError bool
	runStepDelay       time.Duration
	runTimeout         time.Duration
	runQuiet           bool
)

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Runs command scripts",
	Long: `Runs command scripts against the catalog.

Every expression prints one line with its result or error. All scripts
share one environment, so variables set by one file are visible to the
next. The command exits with status 1 when any expression failed.

Examples:
  cmdscript run scripts/customers.cs
  cmdscript run -e "x = 10; execute service 'customer:show'(x);"
  cat script.cs | cmdscript run -`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayVarP(&runInline, "expr", "e", nil, "script source to run (repeatable)")
	runCmd.Flags().BoolVar(&runContinueOnError, "continue", false, "keep running after a failed expression")
	runCmd.Flags().DurationVar(&runStepDelay, "step-delay", 0, "delay before every interpreter step")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "abort after this duration (default: from config)")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "print failures only")
}

func runRun(cmd *cobra.Command, args []string) error {
	sources, err := readSources(args, runInline)
	if err != nil {
		return err
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}
	engine := newEngine(c, runContinueOnError, runStepDelay)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()
	timeout := runTimeout
	if timeout <= 0 {
		timeout = appConfig.Interpreter.Timeout.Duration
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out := cmd.OutOrStdout()
	env := interp.NewEnv()
	failed := false

	for _, src := range sources {
		if len(sources) > 1 {
			fmt.Fprintln(out, tui.RenderTitle(src.name))
		}

		summary, err := engine.Execute(ctx, src.text, env, func(ev interp.Event) {
			if runQuiet && ev.OK {
				return
			}
			fmt.Fprintln(out, tui.RenderEvent(ev))
		})
		if err != nil {
			fmt.Fprintln(out, tui.RenderError(fmt.Sprintf("%s: %v", src.name, err)))
			failed = true
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if !summary.OK() {
			failed = true
		}
		if verbose {
			fmt.Fprintln(out, tui.RenderSummary(summary))
		}
	}

	if failed {
		return errScriptFailed
	}
	return nil
}
