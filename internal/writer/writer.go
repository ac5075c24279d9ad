package writer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// BackupSuffix is appended to a file name to form its backup copy.
const BackupSuffix = "~"

// Action records what a write did to its target.
type Action int

const (
	ActionCreated Action = iota
	ActionOverwritten
	ActionBackedUp
	ActionUpdated
	ActionSkipped
)

func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionOverwritten:
		return "overwritten"
	case ActionBackedUp:
		return "backed up and overwritten"
	case ActionUpdated:
		return "updated"
	case ActionSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome describes one target file after a write.
type Outcome struct {
	Path   string
	Action Action

	// Backup is the path of the "~" copy, empty when none was made.
	Backup string
}

// Policy selects how an existing target is treated.
type Policy struct {
	Overwrite bool
	Backup    bool
}

// File is a target below Root. Rel is slash separated and must not leave Root.
type File struct {
	Root    string
	Rel     string
	Content []byte
}

// MergeFunc derives new content from the current content of a file.
type MergeFunc func(current []byte) ([]byte, error)

// Writer writes generated files.
type Writer interface {
	// Write applies the policy: an absent target is created; a present one
	// fails with ErrAlreadyExists unless Overwrite is set, in which case it
	// is first copied to "<path>~" when Backup is set.
	Write(ctx context.Context, f File, p Policy) (Outcome, error)

	// WriteNew creates the target only when it is absent and reports
	// ActionSkipped otherwise.
	WriteNew(ctx context.Context, f File) (Outcome, error)

	// Update rewrites an existing target with merge applied to its current
	// content, backing it up first when backup is set. An absent target is
	// created from f.Content; a merge that changes nothing is skipped.
	Update(ctx context.Context, f File, backup bool, merge MergeFunc) (Outcome, error)
}

// Option configures a Writer.
type Option func(*writer)

// WithLogger sets the logger for write events.
func WithLogger(logger *slog.Logger) Option {
	return func(w *writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithFileMode sets the permission bits of written files.
func WithFileMode(mode fs.FileMode) Option {
	return func(w *writer) { w.mode = mode }
}

type writer struct {
	logger *slog.Logger
	mode   fs.FileMode
}

// New creates a Writer.
func New(opts ...Option) Writer {
	w := &writer{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		mode:   0o644,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *writer) Write(ctx context.Context, f File, p Policy) (Outcome, error) {
	path, err := w.prepare(ctx, f)
	if err != nil {
		return Outcome{}, err
	}

	exists, err := fileExists(path)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Path: path, Action: ActionCreated}
	if exists {
		if !p.Overwrite {
			return Outcome{}, fmt.Errorf("%w: %s", ErrAlreadyExists, path)
		}
		out.Action = ActionOverwritten
		if p.Backup {
			if out.Backup, err = backup(path, w.mode); err != nil {
				return Outcome{}, err
			}
			out.Action = ActionBackedUp
		}
	}

	if err := w.put(path, f.Content); err != nil {
		return Outcome{}, err
	}
	w.logger.Debug("file written", "path", path, "action", out.Action.String())
	return out, nil
}

func (w *writer) WriteNew(ctx context.Context, f File) (Outcome, error) {
	path, err := w.prepare(ctx, f)
	if err != nil {
		return Outcome{}, err
	}
	exists, err := fileExists(path)
	if err != nil {
		return Outcome{}, err
	}
	if exists {
		w.logger.Debug("file exists, not written", "path", path)
		return Outcome{Path: path, Action: ActionSkipped}, nil
	}
	if err := w.put(path, f.Content); err != nil {
		return Outcome{}, err
	}
	w.logger.Debug("file written", "path", path, "action", ActionCreated.String())
	return Outcome{Path: path, Action: ActionCreated}, nil
}

func (w *writer) Update(ctx context.Context, f File, withBackup bool, merge MergeFunc) (Outcome, error) {
	path, err := w.prepare(ctx, f)
	if err != nil {
		return Outcome{}, err
	}

	current, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := w.put(path, f.Content); err != nil {
			return Outcome{}, err
		}
		return Outcome{Path: path, Action: ActionCreated}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("read %s: %w", path, err)
	}

	merged, err := merge(current)
	if err != nil {
		return Outcome{}, fmt.Errorf("merge %s: %w", path, err)
	}
	if bytes.Equal(merged, current) {
		w.logger.Debug("file up to date", "path", path)
		return Outcome{Path: path, Action: ActionSkipped}, nil
	}

	out := Outcome{Path: path, Action: ActionUpdated}
	if withBackup {
		if out.Backup, err = backup(path, w.mode); err != nil {
			return Outcome{}, err
		}
	}
	if err := w.put(path, merged); err != nil {
		return Outcome{}, err
	}
	w.logger.Debug("file updated", "path", path, "backup", out.Backup)
	return out, nil
}

// prepare checks cancellation and resolves the target path.
func (w *writer) prepare(ctx context.Context, f File) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	return resolve(f.Root, f.Rel)
}

func (w *writer) put(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	if err := os.WriteFile(path, content, w.mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// resolve joins rel onto root and rejects results outside root.
func resolve(root, rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) || rel == "" {
		return "", fmt.Errorf("%w: %q is not a relative path", ErrPathEscape, rel)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: parent reference in %q", ErrPathEscape, rel)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}
	path := filepath.Join(absRoot, cleaned)
	if !strings.HasPrefix(path, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes %s", ErrPathEscape, rel, absRoot)
	}
	return path, nil
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return false, fmt.Errorf("%s is a directory", path)
		}
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
}

// backup copies path to path~ byte for byte.
func backup(path string, mode fs.FileMode) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrBackupFailed, path, err)
	}
	dest := path + BackupSuffix
	if err := os.WriteFile(dest, data, mode); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrBackupFailed, dest, err)
	}
	return dest, nil
}
