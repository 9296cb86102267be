// Package fsutil provides idempotent file-system primitives for the pyq
// application: executable bits, symlinks, and robust recursive deletion.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

const (
	// DefaultRetries is the delete attempt budget for transient failures.
	DefaultRetries = 3
	// DefaultRetryDelay is the pause between delete attempts.
	DefaultRetryDelay = 100 * time.Millisecond
)

// WarnFunc receives non-fatal diagnostics emitted during file operations.
type WarnFunc func(format string, args ...any)

// Ops bundles the file-system primitives with a warning sink and the
// platform's executability semantics.
type Ops struct {
	warn       WarnFunc
	posixExec  bool
	retries    int
	retryDelay time.Duration
}

// New creates an Ops instance. posixExec selects permission-bit
// executability; warn may be nil.
func New(posixExec bool, warn WarnFunc) *Ops {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	return &Ops{
		warn:       warn,
		posixExec:  posixExec,
		retries:    DefaultRetries,
		retryDelay: DefaultRetryDelay,
	}
}

// Exists reports whether a path exists as a file or directory.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether a path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsWithin reports whether path is base itself or a strict descendant of
// base after lexical cleaning. Every destructive delete is guarded by it.
func IsWithin(base, path string) bool {
	base = filepath.Clean(base)
	path = filepath.Clean(path)
	if path == base {
		return true
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// EnsureDir creates a directory and any missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s (check permissions): %w", path, err)
	}
	return nil
}

// SetExecutable adds owner, group, and other execute bits to an existing
// file. On platforms with extension-based executability it is a no-op.
func (o *Ops) SetExecutable(path string) error {
	if !o.posixExec {
		o.warn("executable bit not supported on this platform, skipping: %s", path)
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.Chmod(path, info.Mode().Perm()|0111); err != nil {
		return fmt.Errorf("failed to mark %s executable: %w", path, err)
	}
	return nil
}

// CreateSymlink creates a symlink to an existing target. The target must
// exist as a file or directory; a missing target is an error and no link
// is created.
func (o *Ops) CreateSymlink(target, link string) error {
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("symlink target does not exist: %s", target)
		}
		return fmt.Errorf("failed to stat symlink target %s: %w", target, err)
	}
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("failed to create symlink %s -> %s (may require elevated privileges): %w", link, target, err)
	}
	return nil
}

// RemoveAllRobust recursively deletes a path, clearing read-only permission
// bits first and retrying transient in-use or access-denied failures within
// a bounded budget. A missing path is a warning, not an error.
func (o *Ops) RemoveAllRobust(path string) error {
	if !Exists(path) {
		o.warn("nothing to delete, path does not exist: %s", path)
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= o.retries; attempt++ {
		o.clearReadOnly(path)

		err := os.RemoveAll(path)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return fmt.Errorf("failed to delete %s: %w", path, err)
		}

		lastErr = err
		if attempt < o.retries {
			o.warn("delete attempt %d/%d failed for %s, retrying: %v", attempt, o.retries, path, err)
			time.Sleep(o.retryDelay)
		}
	}

	return fmt.Errorf("failed to delete %s after %d attempts, manual cleanup required: %w", path, o.retries, lastErr)
}

// clearReadOnly walks the tree and restores write permission best-effort.
// Individual failures are warned, never fatal: the subsequent delete
// attempt decides whether they mattered.
func (o *Ops) clearReadOnly(path string) {
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			o.warn("failed to inspect %s while clearing read-only attributes: %v", p, err)
			return nil
		}
		info, err := d.Info()
		if err != nil {
			o.warn("failed to stat %s while clearing read-only attributes: %v", p, err)
			return nil
		}
		mode := info.Mode().Perm()
		var want os.FileMode
		if d.IsDir() {
			want = mode | 0700
		} else {
			want = mode | 0200
		}
		if want == mode {
			return nil
		}
		if err := os.Chmod(p, want); err != nil {
			o.warn("failed to clear read-only attribute on %s: %v", p, err)
		}
		return nil
	})
}

// isTransient reports whether a delete failure belongs to the in-use or
// access-denied class worth retrying after clearing attributes again.
func isTransient(err error) bool {
	if os.IsPermission(err) {
		return true
	}
	return errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.ETXTBSY)
}
