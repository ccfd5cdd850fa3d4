package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdscript/foundation/utils/stringx"
	"github.com/msto63/cmdscript/internal/tui"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Lists the services and forms of the catalog",
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, tui.RenderTitle("Services")+" "+tui.SubtitleStyle.Render(c.Dir()))
	ids := c.ServiceIDs()
	if len(ids) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, id := range ids {
		def, _ := c.Service(id)
		var flags []string
		if def.RequireKey {
			flags = append(flags, "key")
		}
		if def.RequireParameters {
			flags = append(flags, "params")
		}
		line := fmt.Sprintf("  %s %s", stringx.PadRight(def.ID, 24, ' '), stringx.PadRight(def.Kind, 6, ' '))
		if len(flags) > 0 {
			line += " requires " + strings.Join(flags, ",")
		}
		if def.Description != "" {
			line += "  " + tui.HelpStyle.Render(def.Description)
		}
		fmt.Fprintln(out, line+"  "+tui.HelpStyle.Render(filepath.Base(def.SourceFile)))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, tui.RenderTitle("Forms"))
	ids = c.FormIDs()
	if len(ids) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, id := range ids {
		def, _ := c.Form(id)
		fmt.Fprintf(out, "  %s %s [%s]\n", stringx.PadRight(def.ID, 24, ' '), def.Title, strings.Join(def.Fields, ", "))
	}
	return nil
}
