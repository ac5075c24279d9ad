package generator

import (
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/mesd/mesdgen/internal/config"
	"github.com/mesd/mesdgen/internal/metadata"
	"github.com/mesd/mesdgen/internal/template"
	"github.com/mesd/mesdgen/internal/writer"
)

// Target names one entity of one bundle.
type Target struct {
	Bundle config.Bundle

	// Entity is the entity name relative to the bundle Entity namespace,
	// e.g. Post or Blog\Post.
	Entity string
	Meta   *metadata.EntityMetadata
}

// Report collects what a generation did.
type Report struct {
	Outcomes []writer.Outcome

	// Notes are progress lines meant for the console.
	Notes []string

	// Failures holds per-entity errors of runs that keep going past them.
	Failures []Failure
}

// Failure is an entity that could not be generated.
type Failure struct {
	Entity string
	Err    error
}

func (r *Report) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

func (r *Report) add(o writer.Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Generator renders skeletons for every kind of generated file.
type Generator struct {
	resolver template.Resolver
	renderer template.Renderer
	writer   writer.Writer
	logger   *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a Generator.
func New(resolver template.Resolver, renderer template.Renderer, w writer.Writer, opts ...Option) *Generator {
	g := &Generator{
		resolver: resolver,
		renderer: renderer,
		writer:   w,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// render resolves and renders one skeleton.
func (g *Generator) render(bundleDir, id string, stock bool, c *template.Context) (string, template.Skeleton, error) {
	sk, err := g.resolver.Resolve(bundleDir, id, stock)
	if err != nil {
		return "", template.Skeleton{}, err
	}
	res, err := g.renderer.Render(sk, c)
	if err != nil {
		return "", sk, err
	}
	g.logger.Debug("skeleton rendered", "id", id, "origin", sk.Origin.String(), "location", sk.Location)
	return res.Text, sk, nil
}

// fragment renders a skeleton meant to be joined into a block, without its
// trailing newlines.
func (g *Generator) fragment(bundleDir, id string, stock bool, c *template.Context) (string, error) {
	text, _, err := g.render(bundleDir, id, stock, c)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(text, "\n"), nil
}

// splitEntity splits Blog\Post into Blog and Post.
func splitEntity(entity string) (namespace, class string) {
	entity = strings.ReplaceAll(entity, "/", `\`)
	if i := strings.LastIndex(entity, `\`); i >= 0 {
		return entity[:i], entity[i+1:]
	}
	return "", entity
}

// namespaceSegment returns `\Blog` for Blog and nothing for the root namespace.
func namespaceSegment(ns string) string {
	if ns == "" {
		return ""
	}
	return `\` + ns
}

// slashPath turns a namespace into a slash separated relative path.
func slashPath(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, strings.ReplaceAll(p, `\`, "/"))
		}
	}
	return path.Join(kept...)
}

// FormTypeName returns the form name Symfony derives for an entity type,
// e.g. acme_blogbundle_blog_posttype.
func FormTypeName(bundleNamespace, entity string) string {
	ns, class := splitEntity(entity)
	name := strings.ReplaceAll(strings.Trim(bundleNamespace, `\`), `\`, "_")
	if ns != "" {
		name += "_" + strings.ReplaceAll(ns, `\`, "_")
	}
	return strings.ToLower(name + "_" + class + "Type")
}

// indentLines prefixes every non-empty line with prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

// baseContext binds the markers every bundle-relative skeleton shares.
func baseContext(t Target) *template.Context {
	ns, class := splitEntity(t.Entity)
	return template.NewContext().
		Set("bundle", t.Bundle.Name).
		Set("namespace", strings.Trim(t.Bundle.Namespace, `\`)).
		Set("entity", strings.ReplaceAll(t.Entity, "/", `\`)).
		Set("entity_path", slashPath(t.Entity)).
		Set("entity_class", class).
		Set("entity_namespace", ns).
		Set("entity_namespace_segment", namespaceSegment(ns))
}
