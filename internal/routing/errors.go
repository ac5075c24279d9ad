// Package routing registers generated routing resources in a bundle's
// routing.yml and renders manual instructions when that is not possible.
package routing

import "errors"

// Sentinel errors for routing registration.
var (
	// ErrInvalidRouting indicates an existing routing file that is not a YAML mapping.
	ErrInvalidRouting = errors.New("routing: existing routing file is not a valid YAML mapping")

	// ErrNoResource indicates a format whose routes live in annotations, with nothing to import.
	ErrNoResource = errors.New("routing: annotation routes have no resource to import")
)
