package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesd/mesdgen/internal/ui"
	"github.com/mesd/mesdgen/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "mesdgen",
	Short: "Scaffold Symfony CRUD code from Doctrine entity mappings",
	Long: `mesdgen generates Symfony source files from Doctrine entity metadata:
CRUD controllers with their routes and functional tests, form types,
Twig views, data grids, repositories, and unit-test skeletons.

Entities are named in shortcut notation, e.g. AcmeBlogBundle:Post or
AcmeBlogBundle:Blog/Post. Metadata is read from the bundle's
Resources/config/doctrine/*.orm.yml files or from a JSON dump given
with --metadata.

Every skeleton can be overridden per bundle by a file of the same name
under <bundle>/Resources/skeleton/.`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initDependencies,
}

// Execute runs the root command and prints any error it returns.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd, err)
	}
	return err
}

// ExitCode maps the result of Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

func printError(cmd *cobra.Command, err error) {
	theme := ui.NewTheme(getBoolFlag(cmd, "no-color"))
	if deps != nil {
		theme = deps.Theme
	}
	console := ui.NewConsole(cmd.ErrOrStderr(), theme)
	if errors.Is(err, ui.ErrAborted) {
		console.Error(errors.New("Command aborted"))
		return
	}
	console.Error(err)
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("mesdgen %s\n", version.GetFullVersion()))

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Configuration file (default: .mesdgen.yaml in the working or home directory)")
	pf.BoolP("no-interaction", "n", false, "Do not ask any interactive question")
	pf.BoolP("verbose", "v", false, "Log debug output to stderr")
	pf.Bool("no-color", false, "Disable colour output")
	pf.Bool("strict", false, "Fail on skeleton markers left unresolved")
	pf.StringSlice("answer", nil, "Preset confirmation answers for non-interactive runs, e.g. generation=yes,routing=no")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
