package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/juarezr/fd/internal/entry"
)

// ErrInvalidSize is returned when a size constraint cannot be parsed.
var ErrInvalidSize = errors.New("invalid size constraint")

// sizeUnits maps constraint suffixes to byte multipliers. Single-letter
// suffixes are decimal, the "i" forms binary.
var sizeUnits = map[string]int64{
	"b":  1,
	"k":  1000,
	"m":  1000 * 1000,
	"g":  1000 * 1000 * 1000,
	"ki": 1024,
	"mi": 1024 * 1024,
	"gi": 1024 * 1024 * 1024,
}

// SizeConstraint is one parsed size bound, e.g. "+1m" or "-500k".
type SizeConstraint struct {
	// AtLeast is true for "+N" bounds, false for "-N" bounds.
	AtLeast bool
	// Bytes is the bound in bytes.
	Bytes int64
}

// ParseSizeConstraint parses a constraint of the form "+N<unit>" or
// "-N<unit>", where unit is one of b, k, m, g, ki, mi, gi (default b).
func ParseSizeConstraint(input string) (SizeConstraint, error) {
	if len(input) < 2 || (input[0] != '+' && input[0] != '-') {
		return SizeConstraint{}, fmt.Errorf("%w: %q (expected +N or -N with optional unit)", ErrInvalidSize, input)
	}

	rest := strings.ToLower(input[1:])
	digits := rest
	unit := ""
	for i, r := range rest {
		if r < '0' || r > '9' {
			digits, unit = rest[:i], rest[i:]
			break
		}
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return SizeConstraint{}, fmt.Errorf("%w: %q: %v", ErrInvalidSize, input, err)
	}

	multiplier := int64(1)
	if unit != "" {
		m, ok := sizeUnits[unit]
		if !ok {
			return SizeConstraint{}, fmt.Errorf("%w: unknown unit %q in %q", ErrInvalidSize, unit, input)
		}
		multiplier = m
	}

	return SizeConstraint{AtLeast: input[0] == '+', Bytes: value * multiplier}, nil
}

// SizeFilter keeps regular files satisfying every size constraint.
// Non-regular entries and entries without metadata are dropped when any
// constraint is set.
type SizeFilter struct {
	constraints []SizeConstraint
}

// NewSizeFilter creates a filter from parsed constraints.
func NewSizeFilter(constraints []SizeConstraint) *SizeFilter {
	return &SizeFilter{constraints: constraints}
}

// Keep reports whether the entry satisfies every size constraint.
func (f *SizeFilter) Keep(e *entry.DirEntry) bool {
	if len(f.constraints) == 0 {
		return true
	}

	info := e.Metadata()
	if info == nil || !info.Mode().IsRegular() {
		return false
	}

	size := info.Size()
	for _, c := range f.constraints {
		if c.AtLeast && size < c.Bytes {
			return false
		}
		if !c.AtLeast && size > c.Bytes {
			return false
		}
	}
	return true
}
