package routing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesd/mesdgen/internal/config"
	"github.com/mesd/mesdgen/internal/metadata"
	"github.com/mesd/mesdgen/internal/template"
	"github.com/mesd/mesdgen/internal/writer"
)

// RoutingFile is the bundle routing file, relative to the bundle directory.
const RoutingFile = "Resources/config/routing.yml"

// Import describes the routing resource of one generated controller.
type Import struct {
	Bundle config.Bundle
	Entity string
	Format string

	// Prefix is the route prefix without its leading slash.
	Prefix string
}

// Key returns the routing key, e.g. AcmeBlogBundle_blog_post.
func (i Import) Key() string {
	if i.Prefix == "" {
		return i.Bundle.Name
	}
	return i.Bundle.Name + "_" + strings.ReplaceAll(i.Prefix, "/", "_")
}

// EntityFile returns the routing file name of the entity without extension.
func (i Import) EntityFile() string {
	return metadata.Underscore(i.Entity)
}

// Resource returns the bundle resource path the import points at.
func (i Import) Resource() string {
	return fmt.Sprintf("@%s/Resources/config/routing/%s.%s", i.Bundle.Name, i.EntityFile(), i.Format)
}

// Path returns the routing file the import is registered in.
func (i Import) Path() string {
	return filepath.Join(i.Bundle.Path, filepath.FromSlash(RoutingFile))
}

// Registrar adds imports to bundle routing files.
type Registrar struct {
	resolver template.Resolver
	renderer template.Renderer
	writer   writer.Writer
	logger   *slog.Logger
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registrar) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Registrar.
func New(resolver template.Resolver, renderer template.Renderer, w writer.Writer, opts ...Option) *Registrar {
	r := &Registrar{
		resolver: resolver,
		renderer: renderer,
		writer:   w,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Block renders the YAML import block of imp.
func (r *Registrar) Block(imp Import) (string, error) {
	c := template.NewContext().
		Set("route_key", imp.Key()).
		Set("bundle", imp.Bundle.Name).
		Set("entity_file", imp.EntityFile()).
		Set("format", imp.Format).
		Set("route_prefix", imp.Prefix)
	text, err := r.render(imp.Bundle.Path, "routing/import.yml", c)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(text, "\n") + "\n", nil
}

// Register prepends the import block to the bundle routing file, creating
// it when absent. An import whose key or resource is already present
// leaves the file alone and yields ActionSkipped.
func (r *Registrar) Register(ctx context.Context, imp Import, backup bool) (writer.Outcome, error) {
	if imp.Format == config.FormatAnnotation {
		return writer.Outcome{}, ErrNoResource
	}
	block, err := r.Block(imp)
	if err != nil {
		return writer.Outcome{}, err
	}

	out, err := r.writer.Update(ctx, writer.File{
		Root:    imp.Bundle.Path,
		Rel:     RoutingFile,
		Content: []byte(block),
	}, backup, func(current []byte) ([]byte, error) {
		present, err := registered(current, imp)
		if err != nil {
			return nil, err
		}
		if present {
			return current, nil
		}
		return append([]byte(block+"\n"), current...), nil
	})
	if err != nil {
		return writer.Outcome{}, err
	}
	r.logger.Debug("routing import", "key", imp.Key(), "path", out.Path, "action", out.Action.String())
	return out, nil
}

// registered reports whether the routing document already holds the key
// or the resource of imp.
func registered(doc []byte, imp Import) (bool, error) {
	if len(bytes.TrimSpace(doc)) == 0 {
		return false, nil
	}
	var routes map[string]any
	if err := yaml.Unmarshal(doc, &routes); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidRouting, err)
	}
	if _, ok := routes[imp.Key()]; ok {
		return true, nil
	}
	for _, entry := range routes {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if res, _ := fields["resource"].(string); res == imp.Resource() {
			return true, nil
		}
	}
	return false, nil
}

// Instructions renders the markdown telling the user how to register imp
// by hand.
func (r *Registrar) Instructions(imp Import) (string, error) {
	block, err := r.Block(imp)
	if err != nil {
		return "", err
	}
	c := template.NewContext().
		Set("routing_file", imp.Path()).
		Set("import_block", strings.TrimRight(block, "\n"))
	return r.render(imp.Bundle.Path, "routing/instructions.md", c)
}

func (r *Registrar) render(bundleDir, id string, c *template.Context) (string, error) {
	sk, err := r.resolver.Resolve(bundleDir, id, false)
	if err != nil {
		return "", err
	}
	res, err := r.renderer.Render(sk, c)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
