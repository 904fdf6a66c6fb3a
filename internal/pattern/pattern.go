// Package pattern compiles the user-supplied search pattern into the regular
// expression the entry matcher runs. It owns the case-sensitivity policy
// (explicit flags or smart case) and literal-string quoting; it performs no
// matching itself.
package pattern

import (
	"fmt"
	"regexp"
	"unicode"
)

// CaseMode selects how letter case is treated during matching.
type CaseMode int

const (
	// CaseSmart matches case-insensitively unless the pattern contains an
	// uppercase letter.
	CaseSmart CaseMode = iota
	// CaseSensitive always matches exactly.
	CaseSensitive
	// CaseInsensitive always ignores case.
	CaseInsensitive
)

// Options configures pattern compilation.
type Options struct {
	// Case selects the case-sensitivity policy. Defaults to CaseSmart.
	Case CaseMode
	// FixedString treats the pattern as a literal string instead of a
	// regular expression.
	FixedString bool
}

// InvalidPatternError is returned when the pattern does not compile.
type InvalidPatternError struct {
	Pattern string
	Cause   error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Pattern, e.Cause)
}
func (e *InvalidPatternError) Unwrap() error { return e.Cause }

// Compile builds the byte-oriented regular expression for a user pattern.
// The compiled pattern supports capture groups and is evaluated by the entry
// matcher with standard leftmost-first, non-overlapping semantics.
func Compile(input string, opts Options) (*regexp.Regexp, error) {
	source := input
	if opts.FixedString {
		source = regexp.QuoteMeta(input)
	}

	if insensitive(input, opts.Case) {
		source = "(?i)" + source
	}

	re, err := regexp.Compile(source)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: input, Cause: err}
	}
	return re, nil
}

// insensitive decides whether the compiled pattern ignores case.
func insensitive(input string, mode CaseMode) bool {
	switch mode {
	case CaseSensitive:
		return false
	case CaseInsensitive:
		return true
	default:
		return !hasUppercase(input)
	}
}

// hasUppercase reports whether the pattern contains an uppercase letter,
// which under smart case opts the search into exact matching.
func hasUppercase(input string) bool {
	for _, r := range input {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
