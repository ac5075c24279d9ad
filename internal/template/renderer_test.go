package template

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRendererRender(t *testing.T) {
	t.Run("literal_substitution", func(t *testing.T) {
		sk := Skeleton{ID: "repository/Repository.php", Text: "namespace <namespace>;\n\nclass <className> extends EntityRepository\n{\n}\n"}
		c := NewContext().
			Set("namespace", `Acme\BlogBundle\Repository`).
			Set("className", "PostRepository")

		res, err := NewRenderer().Render(sk, c)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		want := "namespace Acme\\BlogBundle\\Repository;\n\nclass PostRepository extends EntityRepository\n{\n}\n"
		if res.Text != want {
			t.Errorf("Render result = %q, want %q", res.Text, want)
		}
		if len(res.Leftovers) != 0 {
			t.Errorf("Leftovers = %v, want none", res.Leftovers)
		}
	})

	t.Run("values_are_not_re_expanded", func(t *testing.T) {
		sk := Skeleton{ID: "x.php", Text: "<a>|<b>"}
		c := NewContext().Set("a", "<b>").Set("b", "B")

		res, err := NewRenderer().Render(sk, c)
		if err != nil {
			t.Fatal(err)
		}
		if res.Text != "<b>|B" {
			t.Errorf("Render result = %q, want %q", res.Text, "<b>|B")
		}
	})

	t.Run("indent_substituted_last_inside_blocks", func(t *testing.T) {
		sk := Skeleton{ID: "x.php", Text: "{\n<body>\n}"}
		c := NewContext().SetBlock("body", []string{"<spaces>one();", "<spaces><spaces>two();"}, "\n")

		res, err := NewRenderer(WithIndent("  ")).Render(sk, c)
		if err != nil {
			t.Fatal(err)
		}
		want := "{\n  one();\n    two();\n}"
		if res.Text != want {
			t.Errorf("Render result = %q, want %q", res.Text, want)
		}
	})

	t.Run("case_sensitive_markers", func(t *testing.T) {
		sk := Skeleton{ID: "grid/Grid.php", Text: "<entityClassName>/<entityclassname>"}
		c := NewContext().Set("entityClassName", "class PostGrid").Set("entityclassname", "post")

		res, err := NewRenderer().Render(sk, c)
		if err != nil {
			t.Fatal(err)
		}
		if res.Text != "class PostGrid/post" {
			t.Errorf("Render result = %q", res.Text)
		}
	})

	t.Run("leftovers_kept_and_warned", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		sk := Skeleton{ID: "x.php", Text: "<known> <missing> <other> <missing>"}

		res, err := NewRenderer(WithLogger(logger)).Render(sk, NewContext().Set("known", "k"))
		if err != nil {
			t.Fatal(err)
		}
		if res.Text != "k <missing> <other> <missing>" {
			t.Errorf("Render result = %q", res.Text)
		}
		if diff := cmp.Diff([]string{"missing", "other"}, res.Leftovers); diff != "" {
			t.Errorf("Leftovers mismatch (-want +got):\n%s", diff)
		}
		if !strings.Contains(logs.String(), "unresolved skeleton markers") {
			t.Errorf("expected a warning, got log %q", logs.String())
		}
	})

	t.Run("strict_mode_fails", func(t *testing.T) {
		sk := Skeleton{ID: "x.php", Text: "<missing>"}
		_, err := NewRenderer(WithStrict(true)).Render(sk, NewContext())
		if !errors.Is(err, ErrUnresolvedMarker) {
			t.Fatalf("expected ErrUnresolvedMarker, got: %v", err)
		}
		if !strings.Contains(err.Error(), "missing") {
			t.Errorf("error %q does not name the marker", err)
		}
	})

	t.Run("markup_elements_are_not_markers", func(t *testing.T) {
		sk := Skeleton{
			ID:   "twig/index.html.twig",
			Text: "<table>\n<tr><th><field_title></th></tr>\n<br>\n<widget>x</widget>\n<entity_class>\n</table>",
		}
		res, err := NewRenderer(WithStrict(false)).Render(sk, NewContext().Set("field_title", "Title"))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"entity_class"}, res.Leftovers); diff != "" {
			t.Errorf("Leftovers mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unclosed_element_names_are_markers", func(t *testing.T) {
		sk := Skeleton{
			ID:   "twig/show.html.twig",
			Text: "<h1><title></h1>\n<label>\n<form></form>\n<hr>\n",
		}
		res, err := NewRenderer().Render(sk, NewContext())
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"title", "label"}, res.Leftovers); diff != "" {
			t.Errorf("Leftovers mismatch (-want +got):\n%s", diff)
		}

		_, err = NewRenderer(WithStrict(true)).Render(sk, NewContext())
		if !errors.Is(err, ErrUnresolvedMarker) {
			t.Errorf("expected ErrUnresolvedMarker, got: %v", err)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		sk := Skeleton{ID: "x.php", Text: "<a><b><c><spaces><a>"}
		c := NewContext().Set("a", "1").Set("b", "2").Set("c", "3")
		r := NewRenderer()

		first, err := r.Render(sk, c)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 20; i++ {
			again, err := r.Render(sk, c)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(first, again); diff != "" {
				t.Fatalf("render not deterministic (-first +again):\n%s", diff)
			}
		}
	})
}

func TestContext(t *testing.T) {
	t.Run("set_keeps_first_position", func(t *testing.T) {
		c := NewContext().Set("a", "1").Set("b", "2").Set("a", "3")
		if diff := cmp.Diff([]string{"a", "b"}, c.Names()); diff != "" {
			t.Errorf("Names mismatch (-want +got):\n%s", diff)
		}
		if v, _ := c.Get("a"); v != "3" {
			t.Errorf("Get(a) = %q, want 3", v)
		}
	})

	t.Run("merge_overrides", func(t *testing.T) {
		c := NewContext().Set("a", "1").Merge(NewContext().Set("a", "x").Set("z", "26"))
		if v, _ := c.Get("a"); v != "x" {
			t.Errorf("Get(a) = %q, want x", v)
		}
		if c.Len() != 2 {
			t.Errorf("Len = %d, want 2", c.Len())
		}
	})

	t.Run("reserved_and_malformed_names_panic", func(t *testing.T) {
		for _, name := range []string{IndentMarker, "bad name", "", "1st"} {
			func() {
				defer func() {
					r := recover()
					err, ok := r.(error)
					if !ok || !errors.Is(err, ErrInvalidMarker) {
						t.Errorf("Set(%q) recovered %v, want ErrInvalidMarker", name, r)
					}
				}()
				NewContext().Set(name, "v")
			}()
		}
	})
}
