package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestResolverResolve(t *testing.T) {
	stock := fstest.MapFS{
		"form/FormType.php.skel": &fstest.MapFile{Data: []byte("stock form")},
		"twig/show.html.twig.skel": &fstest.MapFile{Data: []byte("stock show")},
	}
	bundle := t.TempDir()
	custom := filepath.Join(bundle, "Resources", "skeleton", "form", "FormType.php.skel")
	if err := os.MkdirAll(filepath.Dir(custom), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(custom, []byte("custom form"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewResolver(stock)

	tests := []struct {
		name       string
		bundleDir  string
		id         string
		stock      bool
		wantText   string
		wantOrigin Origin
	}{
		{"custom_wins", bundle, "form/FormType.php", false, "custom form", OriginCustom},
		{"stock_flag_forces_stock", bundle, "form/FormType.php", true, "stock form", OriginStock},
		{"fallback_to_stock", bundle, "twig/show.html.twig", false, "stock show", OriginStock},
		{"no_bundle_dir", "", "form/FormType.php", false, "stock form", OriginStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sk, err := r.Resolve(tt.bundleDir, tt.id, tt.stock)
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if sk.Text != tt.wantText || sk.Origin != tt.wantOrigin || sk.ID != tt.id {
				t.Errorf("Resolve = %+v, want text %q origin %v", sk, tt.wantText, tt.wantOrigin)
			}
		})
	}

	t.Run("custom_location_is_file_path", func(t *testing.T) {
		sk, err := r.Resolve(bundle, "form/FormType.php", false)
		if err != nil {
			t.Fatal(err)
		}
		if sk.Location != custom {
			t.Errorf("Location = %q, want %q", sk.Location, custom)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := r.Resolve(bundle, "grid/Grid.php", false)
		if !errors.Is(err, ErrSkeletonNotFound) {
			t.Errorf("expected ErrSkeletonNotFound, got: %v", err)
		}
	})

	t.Run("escaping_id_rejected", func(t *testing.T) {
		_, err := r.Resolve("", "../etc/passwd", false)
		if !errors.Is(err, ErrSkeletonNotFound) {
			t.Errorf("expected ErrSkeletonNotFound, got: %v", err)
		}
	})
}

func TestOriginString(t *testing.T) {
	if OriginStock.String() != "stock" || OriginCustom.String() != "custom" {
		t.Errorf("Origin strings = %q, %q", OriginStock, OriginCustom)
	}
}
