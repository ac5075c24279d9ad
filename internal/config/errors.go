// Package config provides configuration management for mesdgen.
// It reads .mesdgen.yaml through viper, applies MESDGEN_* environment
// overrides and defaults, validates the result, and resolves bundle names
// to directories and namespaces.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for configuration operations.
var (
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrConfigRead indicates the configuration file exists but could not be read or parsed.
	ErrConfigRead = errors.New("config: cannot read configuration file")

	// ErrInvalidFormat indicates a routing format outside php, xml, yml and annotation.
	ErrInvalidFormat = errors.New("config: invalid format, must be one of: php, xml, yml, annotation")

	// ErrInvalidIndent indicates an indentation width outside the supported range.
	ErrInvalidIndent = errors.New("config: invalid indent")

	// ErrDynamicToken indicates an unexpanded environment token was detected in a path value.
	ErrDynamicToken = errors.New("config: unexpanded dynamic token detected")

	// ErrBundleNotFound indicates that a bundle name is neither configured nor discoverable.
	ErrBundleNotFound = errors.New("config: bundle not found")
)

// ValidationError represents a single validation error with field context.
type ValidationError struct {
	Field   string
	Message string
	Value   any
	Wrapped error // underlying sentinel error for errors.Is support
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error: field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation: no errors"
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed with %d error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is supports errors.Is by checking contained validation errors against the target.
func (e *ValidationErrors) Is(target error) bool {
	if target == ErrInvalidConfig {
		return true
	}
	for _, ve := range e.Errors {
		if ve.Wrapped != nil && errors.Is(ve.Wrapped, target) {
			return true
		}
	}
	return false
}
