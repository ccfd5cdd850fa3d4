// ============================================================================
// cmdscript - Command Script Language
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the interactive script console
// Author:      Mike Stoffels with Claude
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdscript/foundation/script/interp"
	"github.com/msto63/cmdscript/internal/tui/console"
)

var consoleNoHistory bool

var consoleCmd = &cobra.Command{
	Use:     "console",
	Aliases: []string{"repl"},
	Short:   "Starts the interactive script console",
	Long: `Starts the interactive script console.

Every submitted line runs as a script. Variables survive between lines.
With catalog.watch enabled, catalog changes apply while the console runs.

Keys:
  Enter       Run the line
  ↑/↓         Input history
  PgUp/PgDn   Scroll
  Ctrl+L      Clear the transcript
  Esc         Cancel a run, quit when idle
  Ctrl+C      Quit`,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)

	consoleCmd.Flags().BoolVar(&consoleNoHistory, "no-history", false, "do not persist the input history")
}

func runConsole(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if appConfig.Catalog.Watch {
		if err := c.StartWatching(ctx); err != nil {
			return err
		}
		defer c.Stop()
	}

	historyFile := console.DefaultHistoryFile()
	if consoleNoHistory {
		historyFile = ""
	}

	return console.Run(ctx, console.Config{
		Engine:      newEngine(c, appConfig.Interpreter.ContinueOnError, 0),
		Env:         interp.NewEnv(),
		Prompt:      appConfig.Console.Prompt,
		HistorySize: appConfig.Console.HistorySize,
		HistoryFile: historyFile,
	})
}
