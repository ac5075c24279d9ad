package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mesd/mesdgen/internal/metadata"
	"github.com/mesd/mesdgen/internal/writer"
)

const existingPostTest = `<?php

namespace Acme\BlogBundle\Tests\Entity;

use Acme\BlogBundle\Entity\Post;

class PostTest extends \PHPUnit_Framework_TestCase
{
    public function testGetSetTitle()
    {
        $this->markTestIncomplete();
    }
}
`

func testPath(tg Target, class string) string {
	return filepath.Join(tg.Bundle.SrcRoot(), "Acme", "BlogBundle", "Tests", "Entity", class+"Test.php")
}

func writeExisting(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUnitTest(t *testing.T) {
	g := newTestGenerator(t)
	ctx := context.Background()

	t.Run("creates_test_class", func(t *testing.T) {
		tg := postTarget(t)
		rep, err := g.UnitTest(ctx, tg, UnitTestOptions{Backup: true})
		if err != nil {
			t.Fatalf("UnitTest: %v", err)
		}
		if rep.Outcomes[0].Action != writer.ActionCreated {
			t.Errorf("action = %v, want created", rep.Outcomes[0].Action)
		}
		text := readFile(t, testPath(tg, "Post"))
		assertContains(t, text,
			"namespace Acme\\BlogBundle\\Tests\\Entity;\n\nuse Acme\\BlogBundle\\Entity\\Post;\nuse Acme\\BlogBundle\\Entity\\User;",
			`use Acme\BlogBundle\Entity\Tag;`,
			`class PostTest extends \PHPUnit_Framework_TestCase`,
			"    public function testPostConstruct()",
			"    public function testGetSetTitle()\n    {",
			"        $post->setPublished(true);",
			"public function testGetSetCreatedAt()",
			"        $post->addTags($tags);",
			"        $author = new User();",
		)
		if strings.Contains(text, "testGetSetId") {
			t.Error("identifier got a get/set test")
		}
	})

	t.Run("merges_missing_methods_and_uses", func(t *testing.T) {
		tg := postTarget(t)
		path := testPath(tg, "Post")
		writeExisting(t, path, existingPostTest)

		rep, err := g.UnitTest(ctx, tg, UnitTestOptions{Backup: true})
		if err != nil {
			t.Fatalf("UnitTest: %v", err)
		}
		out := rep.Outcomes[0]
		if out.Action != writer.ActionUpdated {
			t.Errorf("action = %v, want updated", out.Action)
		}
		if got := readFile(t, out.Backup); got != existingPostTest {
			t.Errorf("backup differs from the original:\n%s", got)
		}

		merged := readFile(t, path)
		if n := strings.Count(merged, "function testGetSetTitle"); n != 1 {
			t.Errorf("testGetSetTitle defined %d times", n)
		}
		assertContains(t, merged, "$this->markTestIncomplete();", "function testGetSetPublished()", "function testPostConstruct()")
		if strings.Index(merged, `use Acme\BlogBundle\Entity\User;`) > strings.Index(merged, "class PostTest") {
			t.Error("use statement inserted after the class declaration")
		}
		if !strings.HasSuffix(merged, "}\n") {
			t.Error("merged file lost its closing brace")
		}

		rep, err = g.UnitTest(ctx, tg, UnitTestOptions{Backup: true})
		if err != nil {
			t.Fatalf("UnitTest: %v", err)
		}
		if rep.Outcomes[0].Action != writer.ActionSkipped {
			t.Errorf("second merge action = %v, want skipped", rep.Outcomes[0].Action)
		}
	})

	t.Run("overwrite_replaces", func(t *testing.T) {
		tg := postTarget(t)
		path := testPath(tg, "Post")
		writeExisting(t, path, existingPostTest)

		rep, err := g.UnitTest(ctx, tg, UnitTestOptions{Overwrite: true})
		if err != nil {
			t.Fatalf("UnitTest: %v", err)
		}
		if rep.Outcomes[0].Action != writer.ActionOverwritten {
			t.Errorf("action = %v, want overwritten", rep.Outcomes[0].Action)
		}
		if strings.Contains(readFile(t, path), "markTestIncomplete") {
			t.Error("overwrite kept the old body")
		}
	})

	t.Run("existing_file_without_class", func(t *testing.T) {
		tg := postTarget(t)
		writeExisting(t, testPath(tg, "Post"), "<?php\n// nothing here\n")
		_, err := g.UnitTest(ctx, tg, UnitTestOptions{})
		if !errors.Is(err, ErrNoTestClass) {
			t.Fatalf("error = %v, want ErrNoTestClass", err)
		}
	})

	t.Run("explicit_path", func(t *testing.T) {
		tg := postTarget(t)
		root := t.TempDir()
		rep, err := g.UnitTest(ctx, tg, UnitTestOptions{Path: root})
		if err != nil {
			t.Fatalf("UnitTest: %v", err)
		}
		want := filepath.Join(root, "Acme", "BlogBundle", "Tests", "Entity", "PostTest.php")
		if rep.Outcomes[0].Path != want {
			t.Errorf("path = %s, want %s", rep.Outcomes[0].Path, want)
		}
	})
}

func TestUnitTests(t *testing.T) {
	g := newTestGenerator(t)
	ctx := context.Background()

	t.Run("no_targets", func(t *testing.T) {
		if _, err := g.UnitTests(ctx, nil, UnitTestOptions{}); !errors.Is(err, ErrNoEntities) {
			t.Fatalf("error = %v, want ErrNoEntities", err)
		}
	})

	t.Run("failures_do_not_stop_the_run", func(t *testing.T) {
		post := postTarget(t)
		tag := post
		tag.Entity = "Tag"
		tag.Meta = &metadata.EntityMetadata{
			Name:       `Acme\BlogBundle\Entity\Tag`,
			Identifier: []string{"id"},
			Fields:     []metadata.Field{{Name: "id", Type: "integer"}, {Name: "label", Type: "string"}},
		}
		writeExisting(t, testPath(post, "Post"), "<?php\n")

		var progress []int
		rep, err := g.UnitTests(ctx, []Target{post, tag}, UnitTestOptions{
			Progress: func(done, total int, _ string) { progress = append(progress, done, total) },
		})
		if err != nil {
			t.Fatalf("UnitTests: %v", err)
		}
		if len(rep.Failures) != 1 || rep.Failures[0].Entity != `Acme\BlogBundle\Entity\Post` {
			t.Fatalf("failures = %+v", rep.Failures)
		}
		if !errors.Is(rep.Failures[0].Err, ErrNoTestClass) {
			t.Errorf("failure error = %v", rep.Failures[0].Err)
		}
		if len(rep.Outcomes) != 1 || rep.Outcomes[0].Path != testPath(tag, "Tag") {
			t.Errorf("outcomes = %+v", rep.Outcomes)
		}
		if diff := cmp.Diff([]int{1, 2, 2, 2}, progress); diff != "" {
			t.Errorf("progress mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := g.UnitTests(cctx, []Target{postTarget(t)}, UnitTestOptions{})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	})
}
