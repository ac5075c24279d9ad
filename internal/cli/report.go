package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesd/mesdgen/internal/generator"
	"github.com/mesd/mesdgen/internal/writer"
)

// printReport prints the notes, the written files and the failures of a
// generation.
func printReport(rep generator.Report) {
	c := deps.Console
	for _, n := range rep.Notes {
		c.Line("%s", n)
	}
	for _, o := range rep.Outcomes {
		c.Item(o.Action.String(), o.Path, o.Action != writer.ActionSkipped)
		if o.Backup != "" {
			c.Item("backup", o.Backup, true)
		}
	}
	for _, f := range rep.Failures {
		c.Error(fmt.Errorf("%s: %w", f.Entity, f.Err))
	}
}

// addWriteFlags registers the flags shared by commands that overwrite files.
func addWriteFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("overwrite", false, "Overwrite existing files")
	cmd.Flags().Bool("no-backup", false, "Do not keep a ~ copy of overwritten files")
	cmd.Flags().Bool("stock", false, "Ignore the bundle's custom skeletons")
}

// writePolicy builds the write policy from the command flags and settings.
func writePolicy(cmd *cobra.Command) writer.Policy {
	return writer.Policy{
		Overwrite: getBoolFlag(cmd, "overwrite"),
		Backup:    deps.Settings.Backup && !getBoolFlag(cmd, "no-backup"),
	}
}
