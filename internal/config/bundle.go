package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxDiscoveryDepth bounds how deep bundle discovery descends below a root.
const maxDiscoveryDepth = 4

// ResolveBundle finds a bundle by name. Configured bundles win; otherwise
// the bundle roots are searched for a directory whose path below the root,
// separators removed, equals the name (src/Acme/BlogBundle for AcmeBlogBundle).
func (s *Settings) ResolveBundle(name string) (Bundle, error) {
	for _, b := range s.Bundles {
		if b.Name == name {
			return b, nil
		}
	}

	found, err := s.DiscoverBundles()
	if err != nil {
		return Bundle{}, err
	}
	for _, b := range found {
		if b.Name == name {
			return b, nil
		}
	}
	return Bundle{}, fmt.Errorf("%w: %s", ErrBundleNotFound, name)
}

// BundleForNamespace returns the bundle whose namespace is the longest
// prefix of ns. ns may use / or \ separators.
func (s *Settings) BundleForNamespace(ns string) (Bundle, error) {
	ns = strings.Trim(strings.ReplaceAll(ns, "/", `\`), `\`)

	candidates := append([]Bundle(nil), s.Bundles...)
	found, err := s.DiscoverBundles()
	if err != nil {
		return Bundle{}, err
	}
	candidates = append(candidates, found...)

	var best Bundle
	for _, b := range candidates {
		bns := strings.Trim(b.Namespace, `\`)
		if ns != bns && !strings.HasPrefix(ns, bns+`\`) {
			continue
		}
		if len(bns) > len(strings.Trim(best.Namespace, `\`)) {
			best = b
		}
	}
	if best.Name == "" {
		return Bundle{}, fmt.Errorf("%w: no bundle holds namespace %s", ErrBundleNotFound, ns)
	}
	return best, nil
}

// DiscoverBundles walks the bundle roots for directories named *Bundle.
// Missing roots are skipped.
func (s *Settings) DiscoverBundles() ([]Bundle, error) {
	var bundles []Bundle
	for _, root := range s.BundleRoots {
		if !filepath.IsAbs(root) {
			root = filepath.Join(s.WorkDir, root)
		}
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() || path == root {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			parts := strings.Split(filepath.ToSlash(rel), "/")
			if strings.HasSuffix(d.Name(), "Bundle") {
				bundles = append(bundles, Bundle{
					Name:      strings.Join(parts, ""),
					Path:      path,
					Namespace: strings.Join(parts, `\`),
				})
				return filepath.SkipDir
			}
			if len(parts) >= maxDiscoveryDepth {
				return filepath.SkipDir
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("discover bundles in %s: %w", root, err)
		}
	}
	return bundles, nil
}
