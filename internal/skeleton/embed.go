// Package skeleton holds the stock skeleton tree compiled into mesdgen.
// Bundles override any file by placing one with the same relative path under
// <bundle>/Resources/skeleton/.
package skeleton

import (
	"embed"
	"io/fs"
	"os"
	"slices"
	"strings"
)

//go:embed all:stock
var embedded embed.FS

// Stock returns the embedded skeleton tree rooted at its top directory.
func Stock() fs.FS {
	sub, err := fs.Sub(embedded, "stock")
	if err != nil {
		return embedded
	}
	return sub
}

// Open returns the on-disk tree at dir when set, the embedded tree otherwise.
func Open(dir string) fs.FS {
	if dir == "" {
		return Stock()
	}
	return os.DirFS(dir)
}

// IDs lists every skeleton id in fsys, sorted, without the .skel suffix.
func IDs(fsys fs.FS) ([]string, error) {
	var ids []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if id, ok := strings.CutSuffix(p, ".skel"); ok {
			ids = append(ids, id)
		}
		return nil
	})
	slices.Sort(ids)
	return ids, err
}
