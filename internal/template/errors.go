// Package template renders skeletons by literal marker substitution.
// A skeleton is plain text holding <marker> tokens. Rendering replaces every
// marker found in a Context in a single pass, then replaces indentation
// markers, and finally reports any markers left unresolved.
package template

import "errors"

// Sentinel errors for skeleton resolution and rendering.
var (
	// ErrSkeletonNotFound indicates that neither the bundle override directory
	// nor the stock skeleton tree holds the requested skeleton.
	ErrSkeletonNotFound = errors.New("template: skeleton not found")

	// ErrUnresolvedMarker indicates markers left in the output of a strict render.
	ErrUnresolvedMarker = errors.New("template: unresolved marker")

	// ErrInvalidMarker indicates a marker name that cannot appear in a skeleton.
	ErrInvalidMarker = errors.New("template: invalid marker name")
)
