package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/mesd/mesdgen/internal/metadata"
	"github.com/mesd/mesdgen/internal/template"
	"github.com/mesd/mesdgen/internal/writer"
)

// GridOptions configures data grid generation.
type GridOptions struct {
	// Path overrides the source root the class is written under.
	Path   string
	Policy writer.Policy
	Stock  bool
}

// rowActions are the grid row buttons, each bound to a controller route.
var rowActions = []struct{ action, icon string }{
	{"show", "icon-eye-open"},
	{"edit", "icon-pencil"},
	{"delete", "icon-remove"},
}

// entityFQCN returns the class of the target entity.
func entityFQCN(t Target) string {
	if t.Meta != nil && t.Meta.Name != "" {
		return t.Meta.Name
	}
	return metadata.EntityClass(t.Bundle.Namespace, t.Entity)
}

// swapEntitySegment moves a class from the Entity namespace segment to
// segment: Acme\BlogBundle\Entity\Post becomes Acme\BlogBundle\Grid\Post.
func swapEntitySegment(fqcn, segment string) string {
	const entitySegment = `\Entity\`
	if i := strings.LastIndex(fqcn, entitySegment); i >= 0 {
		return fqcn[:i] + `\` + segment + `\` + fqcn[i+len(entitySegment):]
	}
	ns, class := splitEntity(fqcn)
	if ns == "" {
		return segment + `\` + class
	}
	return ns + `\` + segment + `\` + class
}

// outputRoot returns the explicit root or the bundle's source root.
func outputRoot(t Target, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return t.Bundle.SrcRoot()
}

// Grid generates the <Entity>Grid data grid class of an entity.
func (g *Generator) Grid(ctx context.Context, t Target, opts GridOptions) (Report, error) {
	var rep Report
	gridClass := swapEntitySegment(entityFQCN(t), "Grid") + "Grid"
	ns, class := splitEntity(gridClass)
	class = strings.TrimSuffix(class, "Grid")
	dir := t.Bundle.Path

	var blocks []string
	for _, f := range t.Meta.Fields {
		text, err := g.fragment(dir, "grid/field_column.php", opts.Stock, template.NewContext().Set("Column", f.Name))
		if err != nil {
			return rep, err
		}
		blocks = append(blocks, text)
	}
	for _, a := range t.Meta.Associations {
		text, err := g.fragment(dir, "grid/association_column.php", opts.Stock, template.NewContext().Set("Column", a.Name))
		if err != nil {
			return rep, err
		}
		blocks = append(blocks, text)
	}

	columns := append(t.Meta.FieldNames(), t.Meta.AssociationNames()...)
	stack := make([]string, len(columns))
	for i, col := range columns {
		sep := ","
		if i == 0 {
			sep = ""
		}
		stack[i] = "\n" + template.Marker(template.IndentMarker) + template.Marker(template.IndentMarker) + sep + "'" + col + "'"
	}

	routePrefix := metadata.Underscore(t.Entity)
	actions := make([]string, 0, len(rowActions))
	for _, ra := range rowActions {
		ac := template.NewContext().
			Set("actionVar", ra.action+"Action").
			Set("actionTitle", metadata.UpperFirst(ra.action)).
			Set("entityclassname", routePrefix).
			Set("actionRoute", ra.action).
			Set("actionIcon", ra.icon)
		text, err := g.fragment(dir, "grid/row_action.php", opts.Stock, ac)
		if err != nil {
			return rep, err
		}
		actions = append(actions, text)
	}

	final, err := g.fragment(dir, "grid/final.php", opts.Stock, template.NewContext().
		SetBlock("ColumnStack", stack, "").
		SetBlock("rowActions", actions, ""))
	if err != nil {
		return rep, err
	}

	body := strings.Join(blocks, "\n\n")
	if body != "" {
		body += "\n"
	}
	c := template.NewContext().
		Set("namespace", "namespace "+ns+";").
		Set("entityClassName", "class "+class).
		Set("entityBundleName", t.Bundle.Name+":"+strings.ReplaceAll(t.Entity, `\`, "/")).
		Set("gridBody", body+final)

	text, _, err := g.render(dir, "grid/Grid.php", opts.Stock, c)
	if err != nil {
		return rep, err
	}
	out, err := g.writer.Write(ctx, writer.File{
		Root:    outputRoot(t, opts.Path),
		Rel:     slashPath(gridClass) + ".php",
		Content: []byte(text),
	}, opts.Policy)
	if err != nil {
		return rep, fmt.Errorf("grid: %w", err)
	}
	rep.add(out)
	return rep, nil
}
