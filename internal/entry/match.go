package entry

import (
	"fmt"
	"regexp"

	"github.com/juarezr/fd/internal/filesystem"
)

// CaptureGroup is one participating capture group of one match occurrence.
// Index 0 is the whole match; groups skipped by alternation are omitted
// entirely rather than stored empty.
type CaptureGroup struct {
	Index int
	Text  string
}

// MatchOccurrence is one non-overlapping occurrence of the pattern in an
// entry's search string, with its participating groups in ascending index
// order. Group text preserves the exact matched bytes; Go strings carry
// arbitrary bytes, so no lossy decoding step is involved.
type MatchOccurrence struct {
	Groups []CaptureGroup
}

// Group returns the text of the capture group with the given index, reporting
// false when that group did not participate in the occurrence.
func (o MatchOccurrence) Group(index int) (string, bool) {
	for _, g := range o.Groups {
		if g.Index == index {
			return g.Text, true
		}
	}
	return "", false
}

// Matches returns the stored result of the most recent IsMatch call: one
// element per occurrence, in left-to-right order. It is empty until the first
// evaluation and reflects only the last one.
func (e *DirEntry) Matches() []MatchOccurrence {
	return e.matches
}

// IsMatch evaluates a compiled pattern against the entry and records the
// capture results, replacing any previously stored ones. When searchFullPath
// is true the pattern runs against the absolute form of the entry's path,
// otherwise against the final path component only. Matching operates on the
// raw path bytes, so names that are not valid text in the platform encoding
// still match correctly. Returns whether at least one occurrence was found.
func (e *DirEntry) IsMatch(pattern *regexp.Regexp, searchFullPath bool) bool {
	search := e.searchBytes(searchFullPath)

	located := pattern.FindAllSubmatchIndex(search, -1)
	found := make([]MatchOccurrence, 0, len(located))
	for _, spans := range located {
		groups := make([]CaptureGroup, 0, len(spans)/2)
		for index := 0; index*2 < len(spans); index++ {
			start, end := spans[2*index], spans[2*index+1]
			if start < 0 {
				// Group did not participate in this occurrence.
				continue
			}
			groups = append(groups, CaptureGroup{
				Index: index,
				Text:  string(search[start:end]),
			})
		}
		found = append(found, MatchOccurrence{Groups: groups})
	}

	e.matches = found
	return len(e.matches) > 0
}

// searchBytes derives the byte string the pattern is evaluated against.
func (e *DirEntry) searchBytes(searchFullPath bool) []byte {
	if searchFullPath {
		abs, err := filesystem.AbsoluteForm(e.path)
		if err != nil {
			// Every entry's path must be resolvable within the namespace the
			// walk operated on; anything else is a precondition violation.
			panic(fmt.Sprintf("retrieving absolute path for %q failed: %v", e.path, err))
		}
		return filesystem.PathBytes(abs)
	}

	name, ok := filesystem.FileName(e.path)
	if !ok {
		// The walker is contractually required never to surface paths like
		// "foo/bar/.." or "/" as traversal results, so this indicates a logic
		// defect upstream, not a runtime condition.
		panic(fmt.Sprintf("encountered filesystem entry without a file name: %q", e.path))
	}
	return filesystem.PathBytes(name)
}
