// Package filter provides the post-walk predicates that decide which entries
// reach the matcher and the output stage: file type, extension, size bounds,
// and depth bounds. Filters are pure and never fail; an entry whose metadata
// is unavailable simply fails the predicates that need it.
package filter

import (
	"io/fs"
	"strings"

	"github.com/juarezr/fd/internal/entry"
)

// Filter decides whether an entry is kept.
type Filter interface {
	Keep(e *entry.DirEntry) bool
}

// Chain keeps an entry only when every filter in it does.
type Chain []Filter

// Keep reports whether all filters keep the entry.
func (c Chain) Keep(e *entry.DirEntry) bool {
	for _, f := range c {
		if !f.Keep(e) {
			return false
		}
	}
	return true
}

// TypeFilter keeps entries matching at least one of the enabled kinds.
// A zero TypeFilter keeps everything.
type TypeFilter struct {
	File       bool
	Directory  bool
	Symlink    bool
	Executable bool
	Empty      bool
}

// Active reports whether any kind is enabled.
func (t TypeFilter) Active() bool {
	return t.File || t.Directory || t.Symlink || t.Executable || t.Empty
}

// Keep reports whether the entry matches one of the enabled kinds. Kinds that
// need metadata (executable, empty) fail closed when metadata is unavailable.
func (t TypeFilter) Keep(e *entry.DirEntry) bool {
	if !t.Active() {
		return true
	}

	typ, ok := e.FileType()
	if !ok {
		return false
	}

	if t.File && typ.IsRegular() {
		return true
	}
	if t.Directory && typ.IsDir() {
		return true
	}
	if t.Symlink && typ&fs.ModeSymlink != 0 {
		return true
	}
	if t.Executable && typ.IsRegular() {
		if info := e.Metadata(); info != nil && info.Mode()&0o111 != 0 {
			return true
		}
	}
	if t.Empty {
		info := e.Metadata()
		if info != nil {
			if typ.IsRegular() && info.Size() == 0 {
				return true
			}
		}
	}
	return false
}

// ExtensionFilter keeps entries whose filename ends in one of the given
// extensions, compared case-insensitively and without the leading dot.
type ExtensionFilter struct {
	extensions []string
}

// NewExtensionFilter normalizes the given extensions (leading dots stripped,
// lowercased).
func NewExtensionFilter(extensions []string) *ExtensionFilter {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		normalized = append(normalized, strings.ToLower(strings.TrimPrefix(ext, ".")))
	}
	return &ExtensionFilter{extensions: normalized}
}

// Keep reports whether the entry's filename carries one of the extensions.
func (f *ExtensionFilter) Keep(e *entry.DirEntry) bool {
	if len(f.extensions) == 0 {
		return true
	}

	name := strings.ToLower(e.Path())
	for _, ext := range f.extensions {
		if strings.HasSuffix(name, "."+ext) {
			return true
		}
	}
	return false
}

// DepthFilter bounds the traversal depth of kept entries. Entries without a
// depth (dangling symlinks, which are discovered by a depth-unaware pass) are
// always kept.
type DepthFilter struct {
	// Min is the inclusive lower bound; 0 means unbounded.
	Min int
	// Max is the inclusive upper bound; 0 means unbounded.
	Max int
}

// Keep reports whether the entry's depth is within bounds.
func (f DepthFilter) Keep(e *entry.DirEntry) bool {
	depth, ok := e.Depth()
	if !ok {
		return true
	}
	if f.Min > 0 && depth < f.Min {
		return false
	}
	if f.Max > 0 && depth > f.Max {
		return false
	}
	return true
}
