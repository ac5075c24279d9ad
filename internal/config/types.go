package config

import (
	"path/filepath"
	"strings"
)

// Settings is the resolved mesdgen configuration.
type Settings struct {
	// Indent is the number of spaces substituted for each indentation marker.
	Indent int `mapstructure:"indent"`

	// Format is the default routing configuration format for crud.
	Format string `mapstructure:"format"`

	// Backup controls whether overwritten files are first copied to "<file>~".
	Backup bool `mapstructure:"backup"`

	// StrictMarkers makes unresolved skeleton markers an error.
	StrictMarkers bool `mapstructure:"strict_markers"`

	// SkeletonDir replaces the embedded stock skeletons with a directory on disk.
	SkeletonDir string `mapstructure:"skeleton_dir"`

	// BundleRoots are searched for bundles that are not listed in Bundles.
	BundleRoots []string `mapstructure:"bundle_roots"`

	Bundles []Bundle `mapstructure:"bundles"`

	NoColor bool `mapstructure:"no_color"`

	// WorkDir is the directory relative paths are resolved against.
	WorkDir string `mapstructure:"-"`

	// ConfigFile is the file the settings were read from, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

// Bundle locates a Symfony bundle on disk.
type Bundle struct {
	Name      string `mapstructure:"name"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// SrcRoot returns the directory that holds the bundle namespace tree, i.e.
// the bundle path with one element stripped per namespace segment.
// src/Acme/BlogBundle with namespace Acme\BlogBundle gives src.
func (b Bundle) SrcRoot() string {
	root := filepath.Clean(b.Path)
	for range strings.Split(strings.Trim(b.Namespace, `\`), `\`) {
		root = filepath.Dir(root)
	}
	return root
}

// IndentString returns the literal substituted for one indentation level.
func (s *Settings) IndentString() string {
	return strings.Repeat(" ", s.Indent)
}
