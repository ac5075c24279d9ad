package generator

import (
	"context"
	"fmt"

	"github.com/mesd/mesdgen/internal/template"
	"github.com/mesd/mesdgen/internal/writer"
)

// RepositoryOptions configures repository generation.
type RepositoryOptions struct {
	// Path overrides the source root the class is written under.
	Path  string
	Stock bool
}

// RepositoryClass returns the repository class of an entity: the mapped
// repository class when set, otherwise <Entity>Repository in the bundle's
// Repository namespace.
func RepositoryClass(t Target) string {
	if t.Meta != nil && t.Meta.RepositoryClass != "" {
		return t.Meta.RepositoryClass
	}
	return swapEntitySegment(entityFQCN(t), "Repository") + "Repository"
}

// Repository writes the entity repository class unless it already exists.
func (g *Generator) Repository(ctx context.Context, t Target, opts RepositoryOptions) (Report, error) {
	var rep Report
	fqcn := RepositoryClass(t)
	ns, class := splitEntity(fqcn)

	c := template.NewContext().
		Set("namespace", ns).
		Set("className", class)
	text, _, err := g.render(t.Bundle.Path, "repository/Repository.php", opts.Stock, c)
	if err != nil {
		return rep, err
	}

	out, err := g.writer.WriteNew(ctx, writer.File{
		Root:    outputRoot(t, opts.Path),
		Rel:     slashPath(fqcn) + ".php",
		Content: []byte(text),
	})
	if err != nil {
		return rep, fmt.Errorf("repository: %w", err)
	}
	rep.add(out)
	if out.Action == writer.ActionSkipped {
		rep.note("Repository class %s exists, can't overwrite.", fqcn)
	} else {
		rep.note("Repository class %s written.", fqcn)
	}
	return rep, nil
}
