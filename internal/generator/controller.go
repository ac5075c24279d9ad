package generator

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mesd/mesdgen/internal/config"
	"github.com/mesd/mesdgen/internal/metadata"
	"github.com/mesd/mesdgen/internal/template"
	"github.com/mesd/mesdgen/internal/writer"
)

// ControllerOptions configures CRUD controller generation.
type ControllerOptions struct {
	Format string

	// RoutePrefix defaults to the underscored entity name.
	RoutePrefix string

	// NoWrite restricts the actions to index and show.
	NoWrite bool
	Policy  writer.Policy
	Stock   bool
}

// route is one generated route.
type route struct {
	action  string
	name    string
	path    string
	methods []string
}

// Actions returns the controller actions generated for noWrite.
func Actions(noWrite bool) []string {
	if noWrite {
		return []string{"index", "show"}
	}
	return []string{"index", "show", "new", "edit", "delete"}
}

// RoutePrefix returns the route prefix for an entity: the explicit prefix
// without its leading slash, or the underscored entity name.
func RoutePrefix(entity, explicit string) string {
	prefix := explicit
	if prefix == "" {
		prefix = metadata.Underscore(entity)
	}
	return strings.TrimPrefix(prefix, "/")
}

// routesFor lists the routes of the given actions. new and edit each bring
// the route that handles their form submission.
func routesFor(actions []string, namePrefix string) []route {
	var routes []route
	for _, a := range actions {
		switch a {
		case "index":
			routes = append(routes, route{"index", namePrefix, "/", []string{"GET"}})
		case "show":
			routes = append(routes, route{"show", namePrefix + "_show", "/{id}/show", []string{"GET"}})
		case "new":
			routes = append(routes,
				route{"new", namePrefix + "_new", "/new", []string{"GET"}},
				route{"create", namePrefix + "_create", "/create", []string{"POST"}})
		case "edit":
			routes = append(routes,
				route{"edit", namePrefix + "_edit", "/{id}/edit", []string{"GET"}},
				route{"update", namePrefix + "_update", "/{id}/update", []string{"POST", "PUT"}})
		case "delete":
			routes = append(routes, route{"delete", namePrefix + "_delete", "/{id}/delete", []string{"POST", "DELETE"}})
		}
	}
	return routes
}

// methodList formats HTTP methods the way each routing format spells them.
func methodList(format string, methods []string) string {
	switch format {
	case config.FormatXML:
		return strings.Join(methods, "|")
	case config.FormatPHP:
		quoted := make([]string, len(methods))
		for i, m := range methods {
			quoted[i] = "'" + m + "'"
		}
		return strings.Join(quoted, ", ")
	case config.FormatAnnotation:
		quoted := make([]string, len(methods))
		for i, m := range methods {
			quoted[i] = `"` + m + `"`
		}
		if len(quoted) == 1 {
			return quoted[0]
		}
		return "{" + strings.Join(quoted, ", ") + "}"
	default:
		return strings.Join(methods, ", ")
	}
}

// Controller generates the CRUD controller, its functional test and, for
// yml, xml and php formats, its routing file, in that order.
func (g *Generator) Controller(ctx context.Context, t Target, opts ControllerOptions) (Report, error) {
	var rep Report
	if !config.ValidFormat(opts.Format) {
		return rep, fmt.Errorf("%w: %q", config.ErrInvalidFormat, opts.Format)
	}
	if err := t.Meta.RequireIDNamedIdentifier(); err != nil {
		return rep, fmt.Errorf("crud generator: %w", err)
	}

	prefix := RoutePrefix(t.Entity, opts.RoutePrefix)
	namePrefix := strings.ReplaceAll(prefix, "/", "_")
	actions := Actions(opts.NoWrite)
	routes := routesFor(actions, namePrefix)

	c := baseContext(t).
		Set("route_prefix", prefix).
		Set("route_name_prefix", namePrefix).
		Set("format", opts.Format).
		Set("form_type_name", FormTypeName(t.Bundle.Namespace, t.Entity))

	ns, class := splitEntity(t.Entity)
	dir := t.Bundle.Path

	controller, err := g.controllerClass(dir, c, actions, routes, opts)
	if err != nil {
		return rep, err
	}
	out, err := g.writer.Write(ctx, writer.File{
		Root:    dir,
		Rel:     slashPath("Controller", ns, class+"Controller.php"),
		Content: []byte(controller),
	}, opts.Policy)
	if err != nil {
		return rep, fmt.Errorf("controller: %w", err)
	}
	rep.add(out)

	scenario := "tests/read_scenario.php"
	if slices.ContainsFunc(actions, isWriteAction) {
		scenario = "tests/write_scenario.php"
	}
	body, err := g.fragment(dir, scenario, opts.Stock, c)
	if err != nil {
		return rep, err
	}
	test, _, err := g.render(dir, "tests/controllerTest.php", opts.Stock, template.NewContext().Merge(c).Set("scenario", body))
	if err != nil {
		return rep, err
	}
	out, err = g.writer.Write(ctx, writer.File{
		Root:    dir,
		Rel:     slashPath("Tests", "Controller", ns, class+"ControllerTest.php"),
		Content: []byte(test),
	}, opts.Policy)
	if err != nil {
		return rep, fmt.Errorf("controller test: %w", err)
	}
	rep.add(out)

	if opts.Format == config.FormatAnnotation {
		return rep, nil
	}
	routing, err := g.routingConfig(dir, c, routes, opts)
	if err != nil {
		return rep, err
	}
	out, err = g.writer.Write(ctx, writer.File{
		Root:    dir,
		Rel:     slashPath("Resources", "config", "routing", metadata.Underscore(t.Entity)+"."+opts.Format),
		Content: []byte(routing),
	}, opts.Policy)
	if err != nil {
		return rep, fmt.Errorf("routing config: %w", err)
	}
	rep.add(out)
	return rep, nil
}

func isWriteAction(a string) bool {
	return a == "new" || a == "edit" || a == "delete"
}

func (g *Generator) controllerClass(dir string, base *template.Context, actions []string, routes []route, opts ControllerOptions) (string, error) {
	annotated := opts.Format == config.FormatAnnotation
	c := template.NewContext().Merge(base)

	annotations := map[string]string{}
	for _, r := range routes {
		if !annotated {
			continue
		}
		rc := template.NewContext().
			Set("route_path", r.path).
			Set("route_name", r.name).
			Set("route_methods", methodList(opts.Format, r.methods))
		text, err := g.fragment(dir, "controller/route_annotation.php", opts.Stock, rc)
		if err != nil {
			return "", err
		}
		annotations[r.action] = "\n" + text
	}
	for _, a := range []string{"index", "show", "new", "create", "edit", "update", "delete"} {
		c.Set("route_"+a, annotations[a])
	}

	c.Set("annotation_uses", "").Set("class_route", "")
	if annotated {
		uses, err := g.fragment(dir, "controller/annotation_uses.php", opts.Stock, c)
		if err != nil {
			return "", err
		}
		prefix, _ := base.Get("route_prefix")
		c.Set("annotation_uses", "\n"+uses).
			Set("class_route", fmt.Sprintf("\n *\n * @Route(\"/%s\")", prefix))
	}

	c.Set("delete_form_setup", "").Set("delete_form_view", "")
	if slices.Contains(actions, "delete") {
		setup, err := g.fragment(dir, "controller/delete_form_setup.php", opts.Stock, c)
		if err != nil {
			return "", err
		}
		view, err := g.fragment(dir, "controller/delete_form_view.php", opts.Stock, c)
		if err != nil {
			return "", err
		}
		c.Set("delete_form_setup", setup+"\n").Set("delete_form_view", "\n"+view)
	}

	blocks := make([]string, 0, len(actions))
	for _, a := range actions {
		text, err := g.fragment(dir, "controller/actions/"+a+".php", opts.Stock, c)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, text)
	}
	c.SetBlock("actions", blocks, "\n\n")

	text, _, err := g.render(dir, "controller/controller.php", opts.Stock, c)
	return text, err
}

func (g *Generator) routingConfig(dir string, base *template.Context, routes []route, opts ControllerOptions) (string, error) {
	entries := make([]string, 0, len(routes))
	for _, r := range routes {
		rc := template.NewContext().Merge(base).
			Set("route_name", r.name).
			Set("route_path", r.path).
			Set("route_methods", methodList(opts.Format, r.methods)).
			Set("action", r.action)
		text, err := g.fragment(dir, "config/routes/route."+opts.Format, opts.Stock, rc)
		if err != nil {
			return "", err
		}
		entries = append(entries, text)
	}
	c := template.NewContext().Merge(base).SetBlock("route_entries", entries, "\n\n")
	text, _, err := g.render(dir, "config/routing."+opts.Format, opts.Stock, c)
	return text, err
}
