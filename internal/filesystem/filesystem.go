// Package filesystem provides the path and metadata primitives shared by the
// walker, the entry core, and the output layer: absolute-form resolution,
// final-component extraction, raw byte views of paths, and thin wrappers
// around the OS metadata syscalls.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Statter defines the metadata lookup operations an entry needs.
// It is satisfied by OSFileSystem and by counting stubs in tests.
type Statter interface {
	// Stat returns file info for a path, following symlinks.
	Stat(path string) (os.FileInfo, error)
	// Lstat returns file info for a path without following symlinks.
	Lstat(path string) (os.FileInfo, error)
}

// OSFileSystem implements filesystem operations using the local OS primitives.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem backed by real syscalls.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat returns file info for a path (follows symlinks).
func (r *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Lstat returns file info for a path without following symlinks.
func (r *OSFileSystem) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// ReadDir lists a directory in filename order.
func (r *OSFileSystem) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// ReadFile reads a whole file.
func (r *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// AbsoluteFormError is returned when a path cannot be resolved to its
// absolute form. Every path held by this tool is expected to be resolvable
// within the namespace the walk operated on, so callers treat this as a
// precondition violation rather than a soft error.
type AbsoluteFormError struct {
	Path  string
	Cause error
}

func (e *AbsoluteFormError) Error() string {
	return fmt.Sprintf("failed to resolve absolute form of %s: %v", e.Path, e.Cause)
}
func (e *AbsoluteFormError) Unwrap() error { return e.Cause }

// AbsoluteForm resolves a path to its absolute, cleaned form without touching
// the filesystem beyond the working-directory lookup for relative paths.
// Symlinks are not resolved.
func AbsoluteForm(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &AbsoluteFormError{Path: path, Cause: err}
	}
	return abs, nil
}

// FileName returns the final path component of a path, reporting false when
// the path has none: the filesystem root, an empty path, or a path whose last
// component is a "." or ".." pseudo-segment. Trailing separators are ignored,
// so "foo/bar/" has the final component "bar".
func FileName(path string) (string, bool) {
	trimmed := strings.TrimRight(path, string(filepath.Separator))
	if trimmed == "" {
		// Either an empty path or a bare root like "/".
		return "", false
	}
	base := filepath.Base(trimmed)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", false
	}
	return base, true
}

// PathBytes returns the raw byte representation of a path or path component.
// Go strings already carry arbitrary bytes, so the conversion is lossless for
// every filesystem-legal name; the function exists to mark the single point
// where matching crosses from the path domain into the byte domain.
func PathBytes(path string) []byte {
	return []byte(path)
}
