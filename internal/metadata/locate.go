package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// mappingSuffixes are the Doctrine YAML mapping file suffixes, in lookup order.
var mappingSuffixes = []string{".orm.yml", ".orm.yaml"}

// MappingDir returns the directory holding the Doctrine mappings of a bundle.
func MappingDir(bundlePath string) string {
	return filepath.Join(bundlePath, "Resources", "config", "doctrine")
}

// EntityClass returns the fully qualified class of an entity relative to a
// bundle namespace.
func EntityClass(bundleNamespace, entity string) string {
	return strings.Trim(bundleNamespace, `\`) + `\Entity\` + strings.ReplaceAll(entity, "/", `\`)
}

// LoadEntity reads the mapping of one bundle entity. Entities in a
// sub-namespace (Blog\Post) are looked up as Blog.Post.orm.yml.
func LoadEntity(bundlePath, bundleNamespace, entity string) (*EntityMetadata, error) {
	base := strings.NewReplacer(`\`, ".", "/", ".").Replace(entity)
	class := EntityClass(bundleNamespace, entity)

	for _, suffix := range mappingSuffixes {
		path := filepath.Join(MappingDir(bundlePath), base+suffix)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadClass(path, class)
	}
	return nil, fmt.Errorf("%w: %s (looked in %s)", ErrEntityNotFound, class, MappingDir(bundlePath))
}

// LoadClass reads a mapping or dump file and returns the entity named
// class. An empty class selects the only entity of a single-entity file.
func LoadClass(path, class string) (*EntityMetadata, error) {
	entities, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		if e.Name == class {
			return e, nil
		}
	}
	if len(entities) == 1 && class == "" {
		return entities[0], nil
	}
	return nil, fmt.Errorf("%w: %s not described by %s", ErrEntityNotFound, class, path)
}

// LoadBundle reads every mapping file of a bundle, sorted by file name.
func LoadBundle(bundlePath string) ([]*EntityMetadata, error) {
	dir := MappingDir(bundlePath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no mapping directory %s", ErrEntityNotFound, dir)
		}
		return nil, fmt.Errorf("read mapping dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, suffix := range mappingSuffixes {
			if strings.HasSuffix(e.Name(), suffix) {
				names = append(names, e.Name())
				break
			}
		}
	}
	slices.Sort(names)

	var all []*EntityMetadata
	for _, name := range names {
		entities, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		all = append(all, entities...)
	}
	return all, nil
}

// FilterNamespace keeps the entities whose class lives in namespace or
// below it.
func FilterNamespace(entities []*EntityMetadata, namespace string) []*EntityMetadata {
	prefix := strings.Trim(strings.ReplaceAll(namespace, "/", `\`), `\`)
	var kept []*EntityMetadata
	for _, e := range entities {
		if e.Name == prefix || strings.HasPrefix(e.Name, prefix+`\`) {
			kept = append(kept, e)
		}
	}
	return kept
}
