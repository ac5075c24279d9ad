// Package ui holds the terminal presentation of mesdgen: the colour theme,
// confirmation prompts, the progress bar for multi-entity runs, and the
// markdown renderer for manual instructions. Every component degrades to
// plain text when stdin is not a terminal.
package ui

import "errors"

// Sentinel errors for the ui package.
var (
	// ErrAborted indicates the user declined or cancelled a confirmation.
	ErrAborted = errors.New("ui: command aborted")
)
