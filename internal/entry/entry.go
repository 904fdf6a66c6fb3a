// Package entry defines DirEntry, the unified representation of one
// filesystem node discovered during a search. An entry comes from one of two
// provenance paths: a node yielded by the directory walker, or a path
// recovered separately because it is a symbolic link whose target does not
// resolve. Both are exposed behind the same surface, with the capabilities
// that only one provenance has (traversal depth, walker-supplied file type)
// modeled as optional results.
package entry

import (
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/juarezr/fd/internal/filesystem"
)

// WalkedHandle carries the raw data the walker produces for one node.
type WalkedHandle struct {
	// Path is the node's path as the walker discovered it.
	Path string
	// Type is the node's type bits as reported during traversal.
	// It is only meaningful when TypeKnown is true.
	Type fs.FileMode
	// TypeKnown reports whether the walker supplied Type.
	TypeKnown bool
	// Info is the node's metadata if the walker already fetched it.
	// May be nil; the entry then performs its own lookup on demand.
	Info os.FileInfo
	// Depth is the node's distance from its traversal root.
	Depth int
	// FollowedLinks mirrors the walker's symlink-following setting and
	// decides whether deferred metadata lookups follow links.
	FollowedLinks bool
}

// provenance tags one of the two origins an entry can have.
type provenance int

const (
	provenanceWalked provenance = iota
	provenanceBrokenSymlink
)

// DirEntry is one filesystem node under consideration. It is created once,
// immediately after discovery, and mutated only by the first metadata lookup
// (cache fill) and by match evaluation. Construction performs no I/O.
//
// Distinct entries are independent and safe to use from separate workers.
// The metadata cache fill is synchronized and runs at most once per entry;
// IsMatch overwrites the stored match data unconditionally and must not be
// called concurrently on the same entry.
type DirEntry struct {
	origin provenance
	walked WalkedHandle
	path   string

	fs filesystem.Statter

	metaOnce sync.Once
	meta     os.FileInfo

	matches []MatchOccurrence
}

// NewWalked creates an entry for a node produced by the walker.
func NewWalked(statter filesystem.Statter, h WalkedHandle) *DirEntry {
	return &DirEntry{
		origin: provenanceWalked,
		walked: h,
		path:   h.Path,
		fs:     statter,
	}
}

// NewBrokenSymlink creates an entry for a path known to be a symbolic link
// whose target does not resolve. Such entries carry no traversal depth, and
// their metadata is always looked up without following the link.
func NewBrokenSymlink(statter filesystem.Statter, path string) *DirEntry {
	return &DirEntry{
		origin: provenanceBrokenSymlink,
		path:   path,
		fs:     statter,
	}
}

// Path returns the entry's path.
func (e *DirEntry) Path() string {
	return e.path
}

// TakePath returns the entry's path for callers that are done with the entry
// itself. The entry must not be used afterwards.
func (e *DirEntry) TakePath() string {
	p := e.path
	e.path = ""
	return p
}

// FileType returns the entry's file type bits. For a walked entry this is the
// walker-supplied type, when one was supplied; for a broken symlink it is
// derived from the link's own metadata (the non-following lookup), so the
// reported type is the symlink itself, never its target. The second return is
// false when the type cannot be determined.
func (e *DirEntry) FileType() (fs.FileMode, bool) {
	switch e.origin {
	case provenanceWalked:
		if !e.walked.TypeKnown {
			return 0, false
		}
		return e.walked.Type & fs.ModeType, true
	default:
		info := e.Metadata()
		if info == nil {
			return 0, false
		}
		return info.Mode() & fs.ModeType, true
	}
}

// Metadata returns the entry's metadata, performing the lookup on first call
// only. A failed lookup (I/O error, permission denied, the path vanishing
// between discovery and lookup) is cached as nil and never retried. Walked
// entries follow symlinks iff the walker did; broken-symlink entries always
// use the non-following lookup, since following one would fail by definition.
func (e *DirEntry) Metadata() os.FileInfo {
	e.metaOnce.Do(func() {
		switch e.origin {
		case provenanceWalked:
			if e.walked.Info != nil {
				e.meta = e.walked.Info
				return
			}
			if e.walked.FollowedLinks {
				e.meta = statOrNil(e.fs.Stat, e.path)
			} else {
				e.meta = statOrNil(e.fs.Lstat, e.path)
			}
		default:
			e.meta = statOrNil(e.fs.Lstat, e.path)
		}
	})
	return e.meta
}

// Depth returns the entry's distance from its traversal root. Broken-symlink
// entries are discovered by a secondary, depth-unaware pass and report false.
func (e *DirEntry) Depth() (int, bool) {
	if e.origin != provenanceWalked {
		return 0, false
	}
	return e.walked.Depth, true
}

// Equal reports whether two entries denote the same node. Entries compare by
// path bytes only; provenance, metadata state, and match state never
// participate.
func (e *DirEntry) Equal(other *DirEntry) bool {
	return e.path == other.path
}

// Compare orders two entries lexicographically by path bytes.
func (e *DirEntry) Compare(other *DirEntry) int {
	return strings.Compare(e.path, other.path)
}

// Sort sorts entries lexicographically by path. The sort is stable, so result
// order is deterministic regardless of discovery order.
func Sort(entries []*DirEntry) {
	slices.SortStableFunc(entries, (*DirEntry).Compare)
}

// statOrNil normalizes a failed lookup to a nil FileInfo.
func statOrNil(lookup func(string) (os.FileInfo, error), path string) os.FileInfo {
	info, err := lookup(path)
	if err != nil {
		return nil
	}
	return info
}
