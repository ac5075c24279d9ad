package cli

import (
	"fmt"
	"strings"

	"github.com/mesd/mesdgen/internal/config"
	"github.com/mesd/mesdgen/internal/generator"
	"github.com/mesd/mesdgen/internal/metadata"
)

// resolveTarget turns Bundle:Entity notation into a generation target.
// metadataFile, when set, replaces the bundle's Doctrine mappings as the
// metadata source.
func resolveTarget(settings *config.Settings, shortcut, metadataFile string) (generator.Target, error) {
	bundleName, entity, err := metadata.ParseShortcut(shortcut)
	if err != nil {
		return generator.Target{}, err
	}
	bundle, err := settings.ResolveBundle(bundleName)
	if err != nil {
		return generator.Target{}, err
	}

	var meta *metadata.EntityMetadata
	if metadataFile != "" {
		meta, err = metadata.LoadClass(metadataFile, metadata.EntityClass(bundle.Namespace, entity))
	} else {
		meta, err = metadata.LoadEntity(bundle.Path, bundle.Namespace, entity)
	}
	if err != nil {
		return generator.Target{}, err
	}
	return generator.Target{Bundle: bundle, Entity: entity, Meta: meta}, nil
}

// resolveTestTargets expands the unittest argument: a bundle name selects
// every mapped entity of the bundle, Bundle:Entity selects one, and anything
// else is read as a namespace.
func resolveTestTargets(settings *config.Settings, arg string) ([]generator.Target, error) {
	if strings.Contains(arg, ":") {
		t, err := resolveTarget(settings, arg, "")
		if err != nil {
			return nil, err
		}
		return []generator.Target{t}, nil
	}

	var (
		bundle config.Bundle
		err    error
		ns     string
	)
	if !strings.ContainsAny(arg, `/\`) {
		bundle, err = settings.ResolveBundle(arg)
	}
	if bundle.Name == "" {
		ns = strings.Trim(strings.ReplaceAll(arg, "/", `\`), `\`)
		bundle, err = settings.BundleForNamespace(ns)
	}
	if err != nil {
		return nil, err
	}

	entities, err := metadata.LoadBundle(bundle.Path)
	if err != nil {
		return nil, err
	}
	if ns != "" {
		entities = metadata.FilterNamespace(entities, ns)
	}

	prefix := strings.Trim(bundle.Namespace, `\`) + `\Entity\`
	targets := make([]generator.Target, 0, len(entities))
	for _, m := range entities {
		if !strings.HasPrefix(m.Name, prefix) {
			return nil, fmt.Errorf("%w: %s is outside %s", metadata.ErrInvalidMapping, m.Name, prefix)
		}
		targets = append(targets, generator.Target{
			Bundle: bundle,
			Entity: strings.TrimPrefix(m.Name, prefix),
			Meta:   m,
		})
	}
	return targets, nil
}
