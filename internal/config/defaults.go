package config

import "slices"

// Default value constants to avoid magic numbers and strings.
const (
	DefaultIndent     = 4
	DefaultFormat     = FormatYAML
	DefaultBackup     = true
	DefaultBundleRoot = "src"

	// MaxIndent bounds the indentation width accepted from configuration.
	MaxIndent = 16

	// ConfigName is the base name of the configuration file searched for.
	ConfigName = ".mesdgen"

	// EnvPrefix prefixes environment overrides, e.g. MESDGEN_INDENT=2.
	EnvPrefix = "MESDGEN"
)

// Routing configuration formats.
const (
	FormatYAML       = "yml"
	FormatXML        = "xml"
	FormatPHP        = "php"
	FormatAnnotation = "annotation"
)

// Formats lists the accepted routing formats.
var Formats = []string{FormatPHP, FormatXML, FormatYAML, FormatAnnotation}

// ValidFormat reports whether f is an accepted routing format.
func ValidFormat(f string) bool {
	return slices.Contains(Formats, f)
}

// NewDefaultSettings returns settings populated with default values.
func NewDefaultSettings() *Settings {
	return &Settings{
		Indent:      DefaultIndent,
		Format:      DefaultFormat,
		Backup:      DefaultBackup,
		BundleRoots: []string{DefaultBundleRoot},
	}
}
