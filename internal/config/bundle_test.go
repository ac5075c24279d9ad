package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscoverBundles(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir,
		"src/Acme/BlogBundle/Entity",
		"src/Acme/BlogBundle/Nested/InnerBundle",
		"src/Mesd/Demo/ShopBundle",
		"src/.hidden/GhostBundle",
		"src/Plain",
	)

	s := NewDefaultSettings()
	s.WorkDir = dir
	s.BundleRoots = []string{"src", "missing"}

	got, err := s.DiscoverBundles()
	if err != nil {
		t.Fatalf("DiscoverBundles: %v", err)
	}
	want := []Bundle{
		{Name: "AcmeBlogBundle", Path: filepath.Join(dir, "src/Acme/BlogBundle"), Namespace: `Acme\BlogBundle`},
		{Name: "MesdDemoShopBundle", Path: filepath.Join(dir, "src/Mesd/Demo/ShopBundle"), Namespace: `Mesd\Demo\ShopBundle`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bundles mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveBundle(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "src/Acme/BlogBundle")

	s := NewDefaultSettings()
	s.WorkDir = dir
	s.BundleRoots = []string{filepath.Join(dir, "src")}
	s.Bundles = []Bundle{{Name: "LegacyBundle", Path: "/opt/legacy", Namespace: `Legacy\LegacyBundle`}}

	t.Run("configured", func(t *testing.T) {
		b, err := s.ResolveBundle("LegacyBundle")
		if err != nil {
			t.Fatal(err)
		}
		if b.Path != "/opt/legacy" {
			t.Errorf("Path = %q", b.Path)
		}
	})

	t.Run("discovered", func(t *testing.T) {
		b, err := s.ResolveBundle("AcmeBlogBundle")
		if err != nil {
			t.Fatal(err)
		}
		if b.Namespace != `Acme\BlogBundle` {
			t.Errorf("Namespace = %q", b.Namespace)
		}
		if b.SrcRoot() != filepath.Join(dir, "src") {
			t.Errorf("SrcRoot = %q", b.SrcRoot())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := s.ResolveBundle("NopeBundle")
		if !errors.Is(err, ErrBundleNotFound) {
			t.Errorf("error = %v, want ErrBundleNotFound", err)
		}
	})
}

func TestBundleForNamespace(t *testing.T) {
	s := NewDefaultSettings()
	s.BundleRoots = nil
	s.Bundles = []Bundle{
		{Name: "AcmeBundle", Path: "/src/Acme", Namespace: `Acme`},
		{Name: "AcmeBlogBundle", Path: "/src/Acme/BlogBundle", Namespace: `Acme\BlogBundle`},
	}

	tests := []struct {
		name string
		ns   string
		want string
	}{
		{"longest_prefix_wins", `Acme\BlogBundle\Entity`, "AcmeBlogBundle"},
		{"slash_separators", "Acme/BlogBundle/Entity", "AcmeBlogBundle"},
		{"exact_match", `Acme\BlogBundle`, "AcmeBlogBundle"},
		{"outer_bundle", `Acme\Other`, "AcmeBundle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := s.BundleForNamespace(tt.ns)
			if err != nil {
				t.Fatal(err)
			}
			if b.Name != tt.want {
				t.Errorf("bundle = %q, want %q", b.Name, tt.want)
			}
		})
	}

	t.Run("no_match", func(t *testing.T) {
		_, err := s.BundleForNamespace(`Other\Thing`)
		if !errors.Is(err, ErrBundleNotFound) {
			t.Errorf("error = %v, want ErrBundleNotFound", err)
		}
	})
}
