// Package cli provides the cobra command tree of mesdgen and the
// composition root that wires configuration, skeletons, generators and
// the terminal UI together.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesd/mesdgen/internal/config"
	"github.com/mesd/mesdgen/internal/generator"
	"github.com/mesd/mesdgen/internal/routing"
	"github.com/mesd/mesdgen/internal/skeleton"
	"github.com/mesd/mesdgen/internal/template"
	"github.com/mesd/mesdgen/internal/ui"
	"github.com/mesd/mesdgen/internal/writer"
)

// Dependencies holds the services commands use. It is the only place
// where concrete types are instantiated.
type Dependencies struct {
	Settings  *config.Settings
	Generator *generator.Generator
	Routing   *routing.Registrar
	Theme     *ui.Theme
	Headless  *ui.HeadlessManager
	Confirm   ui.Confirmer
	Progress  ui.Progress
	Console   *ui.Console
	Logger    *slog.Logger
}

// deps is built by initDependencies before any command runs.
var deps *Dependencies

// initDependencies loads the configuration and wires the services for the
// command about to run.
func initDependencies(cmd *cobra.Command, _ []string) error {
	if cmd == versionCmd || cmd.Name() == "help" {
		return nil
	}
	d, err := NewDependencies(cmd)
	if err != nil {
		return err
	}
	deps = d
	return nil
}

// NewDependencies builds the services from the global flags of cmd.
func NewDependencies(cmd *cobra.Command) (*Dependencies, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if getBoolFlag(cmd, "verbose") {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	settings, err := config.Load("", getStringFlag(cmd, "config"))
	if err != nil {
		return nil, err
	}
	if settings.ConfigFile != "" {
		logger.Debug("configuration loaded", "file", settings.ConfigFile)
	}

	stockLabel := "embedded"
	if settings.SkeletonDir != "" {
		stockLabel = settings.SkeletonDir
	}
	resolver := template.NewResolver(skeleton.Open(settings.SkeletonDir), template.WithStockLocation(stockLabel))
	renderer := template.NewRenderer(
		template.WithIndent(settings.IndentString()),
		template.WithStrict(settings.StrictMarkers || getBoolFlag(cmd, "strict")),
		template.WithLogger(logger),
	)
	w := writer.New(writer.WithLogger(logger))

	noColor := settings.NoColor || getBoolFlag(cmd, "no-color") || os.Getenv("NO_COLOR") != ""
	theme := ui.NewTheme(noColor)
	headless := ui.NewHeadlessManager()
	if getBoolFlag(cmd, "no-interaction") {
		headless.ForceHeadless(true)
	}
	answers, err := cmd.Flags().GetStringSlice("answer")
	if err != nil {
		return nil, err
	}
	for _, a := range answers {
		key, raw, _ := strings.Cut(a, "=")
		yes, err := parseAnswer(raw)
		if err != nil {
			return nil, fmt.Errorf("--answer %s: %w", key, err)
		}
		headless.SetAnswer(key, yes)
	}

	return &Dependencies{
		Settings:  settings,
		Generator: generator.New(resolver, renderer, w, generator.WithLogger(logger)),
		Routing:   routing.New(resolver, renderer, w, routing.WithLogger(logger)),
		Theme:     theme,
		Headless:  headless,
		Confirm:   ui.NewConfirmer(theme, headless),
		Progress:  ui.NewProgress(theme, headless, cmd.OutOrStdout()),
		Console:   ui.NewConsole(cmd.OutOrStdout(), theme),
		Logger:    logger,
	}, nil
}

func parseAnswer(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("answer must be yes or no, got %q", raw)
}
