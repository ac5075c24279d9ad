package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesd/mesdgen/internal/generator"
)

var formCmd = &cobra.Command{
	Use:     "form Bundle:Entity",
	Short:   "Generate a form type class for a Doctrine entity",
	Example: "  mesdgen form AcmeBlogBundle:Post",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget(deps.Settings, args[0], getStringFlag(cmd, "metadata"))
		if err != nil {
			return err
		}
		deps.Console.Section("Form generation")
		rep, err := deps.Generator.Form(cmd.Context(), t, generator.FormOptions{
			Policy: writePolicy(cmd),
			Stock:  getBoolFlag(cmd, "stock"),
		})
		printReport(rep)
		return err
	},
}

var twigCmd = &cobra.Command{
	Use:     "twig Bundle:Entity",
	Short:   "Generate the index, show, new and edit Twig views of an entity",
	Example: "  mesdgen twig AcmeBlogBundle:Post --overwrite",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget(deps.Settings, args[0], getStringFlag(cmd, "metadata"))
		if err != nil {
			return err
		}
		deps.Console.Section("Twig generation")
		rep, err := deps.Generator.Twig(cmd.Context(), t, generator.TwigOptions{
			Policy: writePolicy(cmd),
			Stock:  getBoolFlag(cmd, "stock"),
		})
		printReport(rep)
		return err
	},
}

var gridCmd = &cobra.Command{
	Use:     "grid Bundle:Entity",
	Short:   "Generate a data grid class for an entity",
	Example: "  mesdgen grid AcmeBlogBundle:Post --path src",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget(deps.Settings, args[0], getStringFlag(cmd, "metadata"))
		if err != nil {
			return err
		}
		deps.Console.Section("Grid generation")
		rep, err := deps.Generator.Grid(cmd.Context(), t, generator.GridOptions{
			Path:   getStringFlag(cmd, "path"),
			Policy: writePolicy(cmd),
			Stock:  getBoolFlag(cmd, "stock"),
		})
		printReport(rep)
		return err
	},
}

var repositoryCmd = &cobra.Command{
	Use:   "repository Bundle:Entity",
	Short: "Generate the repository class of an entity",
	Long: `Generate the repository class of an entity. The class mapped as the
entity's repository is used when set. An existing file is never
overwritten.`,
	Example: "  mesdgen repository AcmeBlogBundle:Post",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget(deps.Settings, args[0], getStringFlag(cmd, "metadata"))
		if err != nil {
			return err
		}
		deps.Console.Section("Repository generation")
		rep, err := deps.Generator.Repository(cmd.Context(), t, generator.RepositoryOptions{
			Path:  getStringFlag(cmd, "path"),
			Stock: getBoolFlag(cmd, "stock"),
		})
		printReport(rep)
		return err
	},
}

func init() {
	for _, cmd := range []*cobra.Command{formCmd, twigCmd, gridCmd, repositoryCmd} {
		rootCmd.AddCommand(cmd)
		cmd.Flags().String("metadata", "", "Read entity metadata from this mapping or JSON dump")
	}
	addWriteFlags(formCmd)
	addWriteFlags(twigCmd)
	addWriteFlags(gridCmd)
	gridCmd.Flags().String("path", "", "Source root the grid is written under (default: the bundle's)")
	repositoryCmd.Flags().String("path", "", "Source root the repository is written under (default: the bundle's)")
	repositoryCmd.Flags().Bool("stock", false, "Ignore the bundle's custom skeletons")
}
