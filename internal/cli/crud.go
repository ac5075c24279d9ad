package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesd/mesdgen/internal/config"
	"github.com/mesd/mesdgen/internal/generator"
	"github.com/mesd/mesdgen/internal/routing"
	"github.com/mesd/mesdgen/internal/ui"
)

var crudCmd = &cobra.Command{
	Use:   "crud",
	Short: "Generate a CRUD controller with its routes and functional test",
	Long: `Generate a CRUD controller for a Doctrine entity.

The controller gets index and show actions, plus new, create, edit,
update and delete unless --no-write is given. A functional test is
written next to it, and for the php, xml and yml formats a routing file
that is then imported from the bundle's routing.yml.`,
	Example: `  mesdgen crud --entity AcmeBlogBundle:Post --format annotation
  mesdgen crud --entity AcmeBlogBundle:Blog/Post --route-prefix blog/post --no-write`,
	Args: cobra.NoArgs,
	RunE: runCrud,
}

func init() {
	rootCmd.AddCommand(crudCmd)
	crudCmd.Flags().String("entity", "", "The entity class name to initialize (shortcut notation)")
	crudCmd.Flags().String("format", "", "Routing configuration format (php, xml, yml or annotation)")
	crudCmd.Flags().String("route-prefix", "", "The route prefix")
	crudCmd.Flags().Bool("no-write", false, "Generate only the index and show actions")
	crudCmd.Flags().String("metadata", "", "Read entity metadata from this mapping or JSON dump")
	addWriteFlags(crudCmd)
	_ = crudCmd.MarkFlagRequired("entity")
}

func runCrud(cmd *cobra.Command, _ []string) error {
	format := getStringFlag(cmd, "format")
	if format == "" {
		format = deps.Settings.Format
	}
	format = strings.ToLower(format)
	if !config.ValidFormat(format) {
		return fmt.Errorf("%w: %q", config.ErrInvalidFormat, format)
	}

	t, err := resolveTarget(deps.Settings, getStringFlag(cmd, "entity"), getStringFlag(cmd, "metadata"))
	if err != nil {
		return err
	}
	opts := generator.ControllerOptions{
		Format:      format,
		RoutePrefix: getStringFlag(cmd, "route-prefix"),
		NoWrite:     getBoolFlag(cmd, "no-write"),
		Policy:      writePolicy(cmd),
		Stock:       getBoolFlag(cmd, "stock"),
	}

	c := deps.Console
	c.Section("CRUD generation")
	c.Line("You are going to generate a CRUD controller for %q", t.Bundle.Name+":"+t.Entity)
	c.Line("using the %q format with the actions %s.", format, strings.Join(generator.Actions(opts.NoWrite), ", "))
	ok, err := deps.Confirm.Confirm("generation", "Do you confirm generation?", true)
	if err != nil {
		return err
	}
	if !ok {
		return ui.ErrAborted
	}

	rep, err := deps.Generator.Controller(cmd.Context(), t, opts)
	printReport(rep)
	if err != nil {
		return err
	}

	if format == config.FormatAnnotation {
		return nil
	}
	return registerRouting(cmd, routing.Import{
		Bundle: t.Bundle,
		Entity: t.Entity,
		Format: format,
		Prefix: generator.RoutePrefix(t.Entity, opts.RoutePrefix),
	}, opts.Policy.Backup)
}

// registerRouting imports the generated routing file from the bundle's
// routing.yml. A declined confirmation or a failed update falls back to
// printing the lines to add by hand.
func registerRouting(cmd *cobra.Command, imp routing.Import, backup bool) error {
	c := deps.Console
	ok, err := deps.Confirm.Confirm("routing", "Confirm automatic update of the Routing", true)
	if err != nil {
		return err
	}
	if ok {
		out, err := deps.Routing.Register(cmd.Context(), imp, backup)
		if err == nil {
			c.Item("routing "+out.Action.String(), out.Path, true)
			return nil
		}
		deps.Logger.Debug("routing registration failed", "error", err)
		c.Error(err)
	}

	text, err := deps.Routing.Instructions(imp)
	if err != nil {
		return err
	}
	rendered, err := ui.Markdown(deps.Theme, deps.Headless, text)
	if err != nil {
		rendered = text
	}
	_, _ = fmt.Fprint(c.Out, rendered)
	return nil
}
