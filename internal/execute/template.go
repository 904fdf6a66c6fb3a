// Package execute runs a command template once per matched entry. Templates
// support the path placeholders {}, {/}, {//}, {.} and {/.}, plus {0}..{n}
// capture-group substitution fed from the entry's stored match data.
package execute

import (
	"errors"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/juarezr/fd/internal/entry"
)

// -- Sentinels --

var (
	ErrEmptyCommand = errors.New("command template is empty")
)

var captureToken = regexp.MustCompile(`\{(\d+)\}`)

// Template is a parsed per-entry command template.
type Template struct {
	tokens []string
}

// NewTemplate parses command tokens into a template. When no token contains a
// placeholder, the path placeholder {} is appended, so "--exec wc -l" behaves
// like "--exec wc -l {}".
func NewTemplate(tokens []string) (*Template, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyCommand
	}

	hasPlaceholder := false
	for _, tok := range tokens {
		if strings.Contains(tok, "{") {
			hasPlaceholder = true
			break
		}
	}
	if !hasPlaceholder {
		tokens = append(append([]string{}, tokens...), "{}")
	}

	return &Template{tokens: tokens}, nil
}

// Expand renders the template's argv for one entry.
func (t *Template) Expand(e *entry.DirEntry) []string {
	argv := make([]string, 0, len(t.tokens))
	for _, tok := range t.tokens {
		argv = append(argv, expandToken(tok, e))
	}
	return argv
}

// ExpandFormat renders a single format string for one entry; it shares the
// template's placeholder grammar and backs the printer's --format hook.
func ExpandFormat(format string, e *entry.DirEntry) string {
	return expandToken(format, e)
}

func expandToken(token string, e *entry.DirEntry) string {
	path := e.Path()
	base := filepath.Base(path)

	expanded := strings.NewReplacer(
		"{//}", filepath.Dir(path),
		"{/.}", stripExtension(base),
		"{/}", base,
		"{.}", stripExtension(path),
		"{}", path,
	).Replace(token)

	return captureToken.ReplaceAllStringFunc(expanded, func(ref string) string {
		index, err := strconv.Atoi(ref[1 : len(ref)-1])
		if err != nil {
			return ref
		}
		return captureText(e, index, ref)
	})
}

// captureText resolves {N} against the first match occurrence. A group that
// did not participate (or an entry never matched) substitutes as the literal
// token, which keeps broken references visible instead of silently empty.
func captureText(e *entry.DirEntry, index int, literal string) string {
	occurrences := e.Matches()
	if len(occurrences) == 0 {
		return literal
	}
	if text, ok := occurrences[0].Group(index); ok {
		return text
	}
	return literal
}

func stripExtension(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext)
}
