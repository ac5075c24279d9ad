package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads the configuration for a run started in workDir. An explicit
// file must exist; otherwise .mesdgen.yaml is searched in workDir and then
// in the home directory, and defaults apply when neither has one.
// MESDGEN_* environment variables override file values.
func Load(workDir, explicitFile string) (*Settings, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(workDir)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %v", ErrConfigRead, err)
		}
		slog.Debug("no configuration file found, using defaults", "dir", workDir)
	}

	s := NewDefaultSettings()
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigRead, err)
	}
	s.WorkDir = workDir
	s.ConfigFile = v.ConfigFileUsed()
	s.expandPaths()

	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("indent", DefaultIndent)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("backup", DefaultBackup)
	v.SetDefault("strict_markers", false)
	v.SetDefault("skeleton_dir", "")
	v.SetDefault("bundle_roots", []string{DefaultBundleRoot})
	v.SetDefault("no_color", false)
}

// expandKnownEnv expands set environment variables and leaves references
// to unset ones in place so validation can report them.
func expandKnownEnv(p string) string {
	return os.Expand(p, func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return "${" + key + "}"
	})
}

// expandPaths expands environment references in path settings and makes
// them absolute. Bundle paths in a configuration file are relative to
// that file.
func (s *Settings) expandPaths() {
	base := s.WorkDir
	if s.ConfigFile != "" {
		base = filepath.Dir(s.ConfigFile)
	}
	abs := func(p string) string {
		p = expandKnownEnv(p)
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	s.SkeletonDir = abs(s.SkeletonDir)
	for i, root := range s.BundleRoots {
		s.BundleRoots[i] = abs(root)
	}
	for i := range s.Bundles {
		s.Bundles[i].Path = abs(s.Bundles[i].Path)
	}
}
