package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesd/mesdgen/internal/generator"
)

var unittestCmd = &cobra.Command{
	Use:   "unittest <Bundle|Bundle:Entity|Namespace>",
	Short: "Generate or update entity unit tests",
	Long: `Generate a unit test per entity with a getter/setter test per field
and add/remove tests per association.

The argument selects the entities: a bundle name takes every mapped
entity of the bundle, Bundle:Entity takes one, and a namespace such as
Acme/BlogBundle/Entity/Blog takes the entities below it.

An existing test is kept and only receives the missing use statements
and test methods, unless --overwrite is given.`,
	Example: `  mesdgen unittest AcmeBlogBundle
  mesdgen unittest 'Acme\BlogBundle\Entity\Blog' --path tests`,
	Args: cobra.ExactArgs(1),
	RunE: runUnitTest,
}

func init() {
	rootCmd.AddCommand(unittestCmd)
	addWriteFlags(unittestCmd)
	unittestCmd.Flags().String("path", "", "Source root the tests are written under (default: the bundle's)")
}

func runUnitTest(cmd *cobra.Command, args []string) error {
	targets, err := resolveTestTargets(deps.Settings, args[0])
	if err != nil {
		return err
	}

	deps.Console.Section("Unit test generation")
	bar := deps.Progress.Start("Unit tests", len(targets))
	policy := writePolicy(cmd)
	rep, err := deps.Generator.UnitTests(cmd.Context(), targets, generator.UnitTestOptions{
		Path:      getStringFlag(cmd, "path"),
		Overwrite: policy.Overwrite,
		Backup:    policy.Backup,
		Stock:     getBoolFlag(cmd, "stock"),
		Progress: func(_, _ int, entity string) {
			bar.Step(entity)
		},
	})
	bar.Done()
	printReport(rep)
	return err
}
