package walk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// GitignoreReadError is returned when a .gitignore file cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *GitignoreReadError) Unwrap() error { return e.Cause }

// ignoreFileReader defines the minimal filesystem interface needed to load
// ignore rules.
type ignoreFileReader interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// IgnoreMatcher decides which paths the walker skips, using go-git's
// gitignore pattern matcher over the .gitignore at the search root.
type IgnoreMatcher struct {
	matcher gitignore.Matcher
}

// NewIgnoreMatcher loads the .gitignore at root and compiles its patterns.
// Returns a matcher that never ignores if no .gitignore exists.
func NewIgnoreMatcher(root string, fs ignoreFileReader) (*IgnoreMatcher, error) {
	ignorePath := filepath.Join(root, ".gitignore")

	if _, err := fs.Stat(ignorePath); err != nil {
		// No .gitignore - nothing is ever ignored.
		return &IgnoreMatcher{matcher: nil}, nil
	}

	data, err := fs.ReadFile(ignorePath)
	if err != nil {
		return nil, &GitignoreReadError{Path: ignorePath, Cause: err}
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if p := gitignore.ParsePattern(line, nil); p != nil {
			patterns = append(patterns, p)
		}
	}

	return &IgnoreMatcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

// ShouldIgnore checks whether a root-relative path matches any ignore
// pattern. Returns false when no .gitignore was loaded.
func (m *IgnoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m.matcher == nil {
		return false
	}
	return m.matcher.Match(splitPath(relativePath), isDir)
}

// splitPath splits a path into the segments go-git's matcher expects,
// normalizing separators and dropping empty and "." segments.
func splitPath(path string) []string {
	if path == "" {
		return []string{}
	}

	parts := strings.Split(filepath.ToSlash(path), "/")
	var segments []string
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}

// NoOpIgnoreMatcher never ignores any path. It is used when ignore rules are
// disabled or fail to initialize.
type NoOpIgnoreMatcher struct{}

// ShouldIgnore always returns false.
func (NoOpIgnoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	return false
}
