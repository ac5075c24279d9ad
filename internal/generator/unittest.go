package generator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/mesd/mesdgen/internal/metadata"
	"github.com/mesd/mesdgen/internal/template"
	"github.com/mesd/mesdgen/internal/writer"
)

var (
	functionPattern = regexp.MustCompile(`function\s+(\w+)`)
	usePattern      = regexp.MustCompile(`(?m)^\s*use\s+([\w\\]+)\s*;`)
	classPattern    = regexp.MustCompile(`(?m)^\s*(?:abstract\s+|final\s+)?class\s+\w+`)
)

// UnitTestOptions configures unit-test generation.
type UnitTestOptions struct {
	// Path overrides the source root the test is written under.
	Path string

	// Overwrite replaces an existing test instead of merging into it.
	Overwrite bool
	Backup    bool
	Stock     bool

	// Progress is called after each entity of a multi-entity run.
	Progress func(done, total int, entity string)
}

// fieldTests maps aliased field types to their test skeleton.
var fieldTests = map[string]string{
	metadata.TypeString:   "unittest/string.php",
	metadata.TypeInteger:  "unittest/integer.php",
	metadata.TypeBoolean:  "unittest/boolean.php",
	metadata.TypeFloat:    "unittest/float.php",
	metadata.TypeDateTime: "unittest/datetime.php",
}

// testClass is a rendered unit test, kept apart for merging.
type testClass struct {
	uses    []string
	methods []string
	text    string
}

// TestClass returns the unit-test class of an entity: the entity class
// moved from Entity to Tests\Entity with a Test suffix.
func TestClass(t Target) string {
	return swapEntitySegment(entityFQCN(t), `Tests\Entity`) + "Test"
}

// UnitTests generates the unit test of every target. An entity that fails
// is recorded in the report and the run moves on; cancellation stops it.
func (g *Generator) UnitTests(ctx context.Context, targets []Target, opts UnitTestOptions) (Report, error) {
	var rep Report
	if len(targets) == 0 {
		return rep, ErrNoEntities
	}
	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		one, err := g.UnitTest(ctx, t, opts)
		rep.Outcomes = append(rep.Outcomes, one.Outcomes...)
		rep.Notes = append(rep.Notes, one.Notes...)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return rep, err
			}
			g.logger.Warn("unit test generation failed", "entity", entityFQCN(t), "error", err)
			rep.Failures = append(rep.Failures, Failure{Entity: entityFQCN(t), Err: err})
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(targets), entityFQCN(t))
		}
	}
	return rep, nil
}

// UnitTest generates or updates the unit test of one entity.
func (g *Generator) UnitTest(ctx context.Context, t Target, opts UnitTestOptions) (Report, error) {
	var rep Report
	tc, err := g.testClass(t, opts.Stock)
	if err != nil {
		return rep, err
	}

	fqcn := TestClass(t)
	f := writer.File{
		Root:    outputRoot(t, opts.Path),
		Rel:     slashPath(fqcn) + ".php",
		Content: []byte(tc.text),
	}

	var out writer.Outcome
	if opts.Overwrite {
		out, err = g.writer.Write(ctx, f, writer.Policy{Overwrite: true, Backup: opts.Backup})
	} else {
		out, err = g.writer.Update(ctx, f, opts.Backup, func(current []byte) ([]byte, error) {
			merged, err := mergeTest(string(current), tc)
			return []byte(merged), err
		})
	}
	if err != nil {
		return rep, fmt.Errorf("unit test %s: %w", fqcn, err)
	}
	rep.add(out)
	rep.note("Unit test %s %s.", fqcn, out.Action)
	return rep, nil
}

func (g *Generator) testClass(t Target, stock bool) (testClass, error) {
	var tc testClass
	dir := t.Bundle.Path
	entityFQ := entityFQCN(t)
	class := metadata.ShortName(entityFQ)
	indent := g.renderer.Indent()

	tc.uses = append(tc.uses, entityFQ)
	for _, a := range t.Meta.Associations {
		if a.TargetEntity != entityFQ && !slices.Contains(tc.uses, a.TargetEntity) {
			tc.uses = append(tc.uses, a.TargetEntity)
		}
	}

	base := template.NewContext().
		Set("entity", class).
		Set("entityLC", metadata.LowerFirst(class))

	construct, err := g.fragment(dir, "unittest/construct.php", stock, base)
	if err != nil {
		return tc, err
	}
	tc.methods = append(tc.methods, indentLines(construct, indent))

	for _, f := range t.Meta.Fields {
		id, ok := fieldTests[f.Alias()]
		if !ok || f.Name == "id" {
			continue
		}
		text, err := g.fragment(dir, id, stock, template.NewContext().Merge(base).
			Set("fName", metadata.Camelize(f.Name)).
			Set("methodName", "testGetSet"+metadata.Camelize(f.Name)+"()"))
		if err != nil {
			return tc, err
		}
		tc.methods = append(tc.methods, indentLines(text, indent))
	}

	for _, a := range t.Meta.Associations {
		id := "unittest/entity.php"
		if a.ToMany() {
			id = "unittest/collection.php"
		}
		target := a.TargetClass()
		text, err := g.fragment(dir, id, stock, template.NewContext().Merge(base).
			Set("fName", metadata.Camelize(a.Name)).
			Set("methodName", "testGetSet"+metadata.Camelize(a.Name)+"()").
			Set("fEntityLC", metadata.LowerFirst(metadata.Camelize(a.Name))).
			Set("fEntityName", target).
			Set("fEntityLN", a.TargetEntity))
		if err != nil {
			return tc, err
		}
		tc.methods = append(tc.methods, indentLines(text, indent))
	}

	includes := make([]string, 0, len(tc.uses)-1)
	for _, u := range tc.uses[1:] {
		includes = append(includes, "use "+u+";")
	}
	ns, testName := splitEntity(TestClass(t))
	c := template.NewContext().
		Set("testNamespace", "namespace "+ns+";").
		Set("entityLN", entityFQ).
		SetBlock("includes", includes, "\n").
		Set("testClassName", "class "+testName).
		SetBlock("testBody", tc.methods, "\n\n")

	tc.text, _, err = g.render(dir, "unittest/Test.php", stock, c)
	return tc, err
}

// mergeTest adds the use statements and test methods of tc that current
// lacks. Uses go after the last existing use, or before the class
// declaration; methods go before the final closing brace.
func mergeTest(current string, tc testClass) (string, error) {
	classLoc := classPattern.FindStringIndex(current)
	if classLoc == nil {
		return "", ErrNoTestClass
	}

	have := map[string]bool{}
	for _, m := range usePattern.FindAllStringSubmatch(current, -1) {
		have[strings.TrimPrefix(m[1], `\`)] = true
	}
	var missingUses []string
	for _, u := range tc.uses {
		if !have[strings.TrimPrefix(u, `\`)] {
			missingUses = append(missingUses, "use "+u+";")
		}
	}

	defined := map[string]bool{}
	for _, m := range functionPattern.FindAllStringSubmatch(current, -1) {
		defined[m[1]] = true
	}
	var missingMethods []string
	for _, block := range tc.methods {
		m := functionPattern.FindStringSubmatch(block)
		if m == nil || defined[m[1]] {
			continue
		}
		missingMethods = append(missingMethods, block)
	}

	out := current
	if len(missingMethods) > 0 {
		end := strings.LastIndex(out, "}")
		if end < 0 {
			return "", ErrNoTestClass
		}
		out = out[:end] + "\n" + strings.Join(missingMethods, "\n\n") + "\n" + out[end:]
	}
	if len(missingUses) > 0 {
		block := strings.Join(missingUses, "\n")
		if locs := usePattern.FindAllStringIndex(out[:classLoc[0]], -1); len(locs) > 0 {
			at := locs[len(locs)-1][1]
			out = out[:at] + "\n" + block + out[at:]
		} else {
			at := classLoc[0]
			for at < len(out) && (out[at] == '\n' || out[at] == '\r') {
				at++
			}
			out = out[:at] + block + "\n\n" + out[at:]
		}
	}
	return out, nil
}
