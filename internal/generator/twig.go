package generator

import (
	"context"
	"fmt"
	"path"

	"github.com/mesd/mesdgen/internal/metadata"
	"github.com/mesd/mesdgen/internal/template"
	"github.com/mesd/mesdgen/internal/writer"
)

// TwigOptions configures view generation.
type TwigOptions struct {
	Policy writer.Policy
	Stock  bool
}

// Views lists the generated views in write order.
var Views = []string{"index", "show", "new", "edit"}

// recordActions are the per-row links of the index view.
var recordActions = []struct{ action, title string }{
	{"show", "show"},
	{"edit", "edit"},
}

// Twig generates the index, show, new and edit views of an entity.
func (g *Generator) Twig(ctx context.Context, t Target, opts TwigOptions) (Report, error) {
	var rep Report
	if err := t.Meta.RequireIDNamedIdentifier(); err != nil {
		return rep, fmt.Errorf("twig generator: %w", err)
	}

	viewDir := slashPath("Resources", "views", t.Entity)
	rep.note("Generating twigs in %s", slashPath(t.Bundle.Namespace, viewDir))

	dir := t.Bundle.Path
	c := baseContext(t).Set("route_name_prefix", metadata.Underscore(t.Entity))

	for _, view := range Views {
		vc := template.NewContext().Merge(c)
		var err error
		switch view {
		case "index":
			err = g.indexBlocks(dir, t.Meta, opts.Stock, vc)
		case "show":
			err = g.showRows(dir, t.Meta, opts.Stock, vc)
		case "new":
			err = g.formRows(dir, t.Meta, "form", opts.Stock, vc)
		case "edit":
			err = g.formRows(dir, t.Meta, "edit_form", opts.Stock, vc)
		}
		if err != nil {
			return rep, err
		}

		name := view + ".html.twig"
		text, sk, err := g.render(dir, "twig/"+name, opts.Stock, vc)
		if err != nil {
			return rep, err
		}
		out, err := g.writer.Write(ctx, writer.File{
			Root:    dir,
			Rel:     path.Join(viewDir, name),
			Content: []byte(text),
		}, opts.Policy)
		if err != nil {
			return rep, fmt.Errorf("%s view: %w", view, err)
		}
		rep.add(out)
		rep.note("Generated %s %s from %s", sk.Origin, name, sk.Location)
	}
	return rep, nil
}

// viewFields splits names into plain rows, boolean checks and linked
// association maps. Associations that are not linked get no row.
func viewFields(m *metadata.EntityMetadata, names []string) (fields, checks, maps []string) {
	for _, name := range names {
		switch metadata.KindOf(m, name) {
		case metadata.KindBoolean:
			checks = append(checks, name)
		case metadata.KindAssociation:
			if a, _ := m.Association(name); a.Linked() {
				maps = append(maps, name)
			}
		default:
			fields = append(fields, name)
		}
	}
	return fields, checks, maps
}

func (g *Generator) fieldFragment(dir, id string, stock bool, base *template.Context, name string) (string, error) {
	c := template.NewContext().Merge(base).
		Set("field_name", name).
		Set("field_title", metadata.Humanize(name))
	return g.fragment(dir, id, stock, c)
}

func (g *Generator) indexBlocks(dir string, m *metadata.EntityMetadata, stock bool, c *template.Context) error {
	var headers, cells, actions []string
	for _, f := range m.Fields {
		header, err := g.fieldFragment(dir, "twig/index/header_cell.html.twig", stock, c, f.Name)
		if err != nil {
			return err
		}
		id := "twig/index/cell.html.twig"
		switch {
		case f.Name == "id":
			id = "twig/index/id_cell.html.twig"
		case metadata.FieldKind(f) == metadata.KindDateTime:
			id = "twig/index/datetime_cell.html.twig"
		}
		cell, err := g.fieldFragment(dir, id, stock, c, f.Name)
		if err != nil {
			return err
		}
		headers = append(headers, header)
		cells = append(cells, cell)
	}
	for _, ra := range recordActions {
		ac := template.NewContext().Merge(c).
			Set("record_action", ra.action).
			Set("record_title", ra.title)
		text, err := g.fragment(dir, "twig/index/record_action.html.twig", stock, ac)
		if err != nil {
			return err
		}
		actions = append(actions, text)
	}
	c.SetBlock("header_cells", headers, "\n").
		SetBlock("body_cells", cells, "\n").
		SetBlock("record_actions", actions, "\n")
	return nil
}

func (g *Generator) showRows(dir string, m *metadata.EntityMetadata, stock bool, c *template.Context) error {
	names := append(m.FieldNames(), m.AssociationNames()...)
	fields, checks, maps := viewFields(m, names)

	var rows []string
	for _, name := range fields {
		id := "twig/show/field.html.twig"
		if metadata.KindOf(m, name) == metadata.KindDateTime {
			id = "twig/show/datetime.html.twig"
		}
		row, err := g.fieldFragment(dir, id, stock, c, name)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	more, err := g.fieldRows(dir, "twig/show/check.html.twig", stock, c, checks)
	if err != nil {
		return err
	}
	rows = append(rows, more...)
	if more, err = g.fieldRows(dir, "twig/show/map.html.twig", stock, c, maps); err != nil {
		return err
	}
	rows = append(rows, more...)
	c.SetBlock("field_rows", rows, "\n")
	return nil
}

func (g *Generator) formRows(dir string, m *metadata.EntityMetadata, formVar string, stock bool, base *template.Context) error {
	c := template.NewContext().Merge(base).Set("form_var", formVar)
	fields, checks, maps := viewFields(m, m.EligibleFields())

	var rows []string
	for _, set := range []struct {
		id    string
		names []string
	}{
		{"twig/form/field.html.twig", fields},
		{"twig/form/check.html.twig", checks},
		{"twig/form/map.html.twig", maps},
	} {
		more, err := g.fieldRows(dir, set.id, stock, c, set.names)
		if err != nil {
			return err
		}
		rows = append(rows, more...)
	}
	base.SetBlock("field_rows", rows, "\n")
	return nil
}

func (g *Generator) fieldRows(dir, id string, stock bool, c *template.Context, names []string) ([]string, error) {
	rows := make([]string, 0, len(names))
	for _, name := range names {
		row, err := g.fieldFragment(dir, id, stock, c, name)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
