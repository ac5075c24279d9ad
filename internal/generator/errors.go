// Package generator turns entity metadata into Symfony source files. Each
// generator extracts values from the metadata, renders repeated fragments,
// feeds them into a skeleton, and hands the result to the writer.
package generator

import "errors"

// Sentinel errors for generation.
var (
	// ErrNoEntities indicates a target that matched no mapped entity.
	ErrNoEntities = errors.New("generator: no entities found")

	// ErrNoTestClass indicates an existing unit test file without a class declaration.
	ErrNoTestClass = errors.New("generator: no class declaration found in existing test")
)
