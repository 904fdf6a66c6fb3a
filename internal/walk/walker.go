// Package walk implements the parallel directory traversal that produces
// entries for matching. It owns all visit/skip policy: hidden files, ignore
// rules, depth limits, and symlink handling, including the recovery of
// dangling symlinks as first-class entries. Every path it yields is
// guaranteed to have a well-defined final component.
package walk

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/juarezr/fd/internal/entry"
	"github.com/juarezr/fd/internal/filesystem"
)

// defaultWorkers bounds directory-listing concurrency when Options.Workers
// is unset.
const defaultWorkers = 8

// walkFS defines the filesystem operations the walker needs.
type walkFS interface {
	filesystem.Statter
	ReadDir(path string) ([]os.DirEntry, error)
}

// ignorer decides which root-relative paths are excluded by ignore rules.
type ignorer interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

// EmitFunc receives every entry that survives the walker's skip policy.
// Workers call it concurrently; the sink must be safe for concurrent use.
type EmitFunc func(*entry.DirEntry)

// Options configures a traversal.
type Options struct {
	// MaxDepth bounds descent below each root; 0 means unlimited.
	MaxDepth int
	// IncludeHidden visits dot-prefixed files and directories.
	IncludeHidden bool
	// FollowLinks descends through symlinked directories and recovers
	// symlinks with unresolvable targets as broken-symlink entries.
	FollowLinks bool
	// Workers bounds concurrent directory listings.
	Workers int
}

// Walker performs a parallel traversal of one root.
type Walker struct {
	fs      walkFS
	ignore  ignorer
	opts    Options
	onError func(error)
}

// NewWalker creates a walker. onError receives non-fatal traversal errors
// (unreadable directories and the like); nil means they are reported on
// stderr.
func NewWalker(fs walkFS, ignore ignorer, opts Options, onError func(error)) *Walker {
	if fs == nil {
		panic("fs is required")
	}
	if ignore == nil {
		ignore = NoOpIgnoreMatcher{}
	}
	if onError == nil {
		onError = func(err error) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	return &Walker{fs: fs, ignore: ignore, opts: opts, onError: onError}
}

// ReadDirError is reported when a directory cannot be listed during
// traversal. The walk continues past it.
type ReadDirError struct {
	Path  string
	Cause error
}

func (e *ReadDirError) Error() string {
	return fmt.Sprintf("failed to read directory %s: %v", e.Path, e.Cause)
}
func (e *ReadDirError) Unwrap() error { return e.Cause }

// Walk traverses root and invokes emit for every surviving entry. The root
// itself is not emitted. Traversal errors below the root are reported through
// the error handler and skipped; only a cancelled context or an unreadable
// root aborts the walk.
func (w *Walker) Walk(ctx context.Context, root string, emit EmitFunc) error {
	info, err := w.fs.Stat(root)
	if err != nil {
		return &ReadDirError{Path: root, Cause: err}
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	workers := w.opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	var visit func(dir string, depth int)
	visit = func(dir string, depth int) {
		defer wg.Done()
		if ctx.Err() != nil {
			return
		}

		sem <- struct{}{}
		children, err := w.fs.ReadDir(dir)
		<-sem
		if err != nil {
			w.onError(&ReadDirError{Path: dir, Cause: err})
			return
		}

		for _, child := range children {
			path := filepath.Join(dir, child.Name())
			if w.skip(root, path, child) {
				continue
			}

			typ := child.Type()
			isDir := typ.IsDir()

			if w.opts.FollowLinks && typ&fs.ModeSymlink != 0 {
				target, err := w.fs.Stat(path)
				if err != nil {
					// The link's target does not resolve; recover the link
					// itself as an entry rather than dropping it.
					emit(entry.NewBrokenSymlink(w.fs, path))
					continue
				}
				isDir = target.IsDir()
				typ = target.Mode() & fs.ModeType
			}

			emit(entry.NewWalked(w.fs, entry.WalkedHandle{
				Path:          path,
				Type:          typ,
				TypeKnown:     true,
				Depth:         depth,
				FollowedLinks: w.opts.FollowLinks,
			}))

			if isDir && (w.opts.MaxDepth == 0 || depth < w.opts.MaxDepth) {
				wg.Add(1)
				go visit(path, depth+1)
			}
		}
	}

	wg.Add(1)
	go visit(root, 1)
	wg.Wait()

	return ctx.Err()
}

// skip applies the hidden-file and ignore-rule policy to one child.
func (w *Walker) skip(root, path string, child os.DirEntry) bool {
	if !w.opts.IncludeHidden && strings.HasPrefix(child.Name(), ".") {
		return true
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return w.ignore.ShouldIgnore(rel, child.IsDir())
}
