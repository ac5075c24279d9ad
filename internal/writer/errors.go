// Package writer puts generated files on disk under the overwrite and
// backup policy shared by every generator.
package writer

import "errors"

// Sentinel errors for file writes.
var (
	// ErrAlreadyExists indicates the target exists and overwriting was not requested.
	ErrAlreadyExists = errors.New("writer: file already exists")

	// ErrBackupFailed indicates the copy to "<file>~" failed; the target is left untouched.
	ErrBackupFailed = errors.New("writer: backup copy failed")

	// ErrPathEscape indicates a target path that resolves outside its root directory.
	ErrPathEscape = errors.New("writer: path escapes root directory")
)
