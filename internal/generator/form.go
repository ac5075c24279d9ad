package generator

import (
	"context"
	"fmt"

	"github.com/mesd/mesdgen/internal/metadata"
	"github.com/mesd/mesdgen/internal/template"
	"github.com/mesd/mesdgen/internal/writer"
)

// FormOptions configures form type generation.
type FormOptions struct {
	Policy writer.Policy
	Stock  bool
}

// Form generates the <Entity>Type form class of an entity.
func (g *Generator) Form(ctx context.Context, t Target, opts FormOptions) (Report, error) {
	var rep Report
	if err := t.Meta.RequireSingleIdentifier(); err != nil {
		return rep, fmt.Errorf("form generator: %w", err)
	}

	ns, class := splitEntity(t.Entity)
	dir := t.Bundle.Path
	c := baseContext(t).
		Set("form_class", class+"Type").
		Set("form_type_name", FormTypeName(t.Bundle.Namespace, t.Entity))

	fields, err := g.formFields(dir, t.Meta, opts.Stock)
	if err != nil {
		return rep, err
	}
	c.Set("fields", "")
	if len(fields) > 0 {
		c.SetBlock("fields", append([]string{""}, fields...), "\n")
	}

	text, sk, err := g.render(dir, "form/FormType.php", opts.Stock, c)
	if err != nil {
		return rep, err
	}
	out, err := g.writer.Write(ctx, writer.File{
		Root:    dir,
		Rel:     slashPath("FormType", ns, class+"Type.php"),
		Content: []byte(text),
	}, opts.Policy)
	if err != nil {
		return rep, fmt.Errorf("form type: %w", err)
	}
	rep.add(out)
	rep.note("Generated %s FormType for %s:%s", sk.Origin, t.Bundle.Name, t.Entity)
	return rep, nil
}

// formFields renders one builder line per eligible field in mapping order.
func (g *Generator) formFields(dir string, m *metadata.EntityMetadata, stock bool) ([]string, error) {
	var lines []string
	for _, name := range m.EligibleFields() {
		id := "form/fields/default.php"
		c := template.NewContext().Set("field", name)
		switch metadata.KindOf(m, name) {
		case metadata.KindBoolean:
			id = "form/fields/check.php"
		case metadata.KindDateTime:
			id = "form/fields/datetime.php"
		case metadata.KindAssociation:
			a, _ := m.Association(name)
			if a.Cardinality == metadata.OneToMany {
				continue
			}
			if a.InverseManyToMany() {
				id = "form/fields/collection.php"
				c.Set("target", a.TargetEntity)
			}
		}
		line, err := g.fragment(dir, id, stock, c)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
