package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// SkeletonExt is the file suffix of skeleton files, both stock and custom.
const SkeletonExt = ".skel"

// CustomDir is the bundle-relative directory holding skeleton overrides.
const CustomDir = "Resources/skeleton"

// Origin tells where a skeleton was loaded from.
type Origin int

const (
	OriginStock Origin = iota
	OriginCustom
)

func (o Origin) String() string {
	if o == OriginCustom {
		return "custom"
	}
	return "stock"
}

// Skeleton is an immutable named template text.
type Skeleton struct {
	// ID is the slash separated name without SkeletonExt, e.g. "form/FormType.php".
	ID       string
	Text     string
	Origin   Origin
	Location string
}

// Resolver looks up skeletons by id.
type Resolver interface {
	// Resolve returns the skeleton for id. Unless stock is set, a file under
	// <bundleDir>/Resources/skeleton/<id>.skel wins over the stock tree.
	// bundleDir may be empty to skip the override lookup.
	Resolve(bundleDir, id string, stock bool) (Skeleton, error)
}

// ResolverOption configures a Resolver.
type ResolverOption func(*resolver)

// WithStockLocation labels stock skeletons in diagnostics, typically with
// the directory an on-disk stock tree was read from.
func WithStockLocation(label string) ResolverOption {
	return func(r *resolver) { r.stockLabel = label }
}

type resolver struct {
	stock      fs.FS
	stockLabel string
}

// NewResolver creates a Resolver backed by the given stock tree. In
// production the tree comes from go:embed; in tests use fstest.MapFS.
func NewResolver(stock fs.FS, opts ...ResolverOption) Resolver {
	r := &resolver{stock: stock, stockLabel: "embedded"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *resolver) Resolve(bundleDir, id string, stock bool) (Skeleton, error) {
	name := path.Clean(id) + SkeletonExt
	if !fs.ValidPath(name) {
		return Skeleton{}, fmt.Errorf("%w: invalid id %q", ErrSkeletonNotFound, id)
	}

	if !stock && bundleDir != "" {
		custom := filepath.Join(bundleDir, filepath.FromSlash(CustomDir), filepath.FromSlash(name))
		data, err := os.ReadFile(custom)
		switch {
		case err == nil:
			return Skeleton{ID: id, Text: string(data), Origin: OriginCustom, Location: custom}, nil
		case !errors.Is(err, fs.ErrNotExist):
			return Skeleton{}, fmt.Errorf("read custom skeleton %s: %w", custom, err)
		}
	}

	data, err := fs.ReadFile(r.stock, name)
	if err != nil {
		return Skeleton{}, fmt.Errorf("%w: %s", ErrSkeletonNotFound, id)
	}
	return Skeleton{ID: id, Text: string(data), Origin: OriginStock, Location: r.stockLabel + ":" + name}, nil
}
