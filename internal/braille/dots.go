// Package braille provides the core types for six-dot Braille translation:
// dot-sets, Unicode Braille cells, and the table entries built on them.
package braille

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// MinDot and MaxDot bound the dot numbers of a six-dot cell.
const (
	MinDot = 1
	MaxDot = 6
)

// ErrInvalidDot is returned when a dot number falls outside [MinDot, MaxDot].
var ErrInvalidDot = errors.New("invalid dot")

// DotSet is a set of raised dots in a six-dot cell.
// Bit 0 is dot 1 and bit 5 is dot 6, so the value itself is canonical:
// two sets with the same members always compare equal.
type DotSet uint8

// Empty is the set with no dots raised. It denotes "no input".
const Empty DotSet = 0

const dotMask = 0x3F

// NewDotSet builds a DotSet from dot numbers in any order.
// Duplicates are allowed; any dot outside [1,6] yields ErrInvalidDot.
func NewDotSet(dots ...int) (DotSet, error) {
	var s DotSet
	for _, d := range dots {
		if !ValidDot(d) {
			return Empty, fmt.Errorf("%w: %d", ErrInvalidDot, d)
		}
		s |= 1 << (d - 1)
	}
	return s, nil
}

// MustDotSet is like NewDotSet but panics on invalid input.
// It is intended for static tables.
func MustDotSet(dots ...int) DotSet {
	s, err := NewDotSet(dots...)
	if err != nil {
		panic(err)
	}
	return s
}

// FromBits returns the DotSet for the low six bits of b.
func FromBits(b uint8) DotSet {
	return DotSet(b & dotMask)
}

// ValidDot reports whether d is a dot number of a six-dot cell.
func ValidDot(d int) bool {
	return d >= MinDot && d <= MaxDot
}

// Canonical returns a sorted, duplicate-free copy of dots.
func Canonical(dots []int) []int {
	out := lo.Uniq(dots)
	slices.Sort(out)
	return out
}

// Bits returns the bit representation of the set.
func (s DotSet) Bits() uint8 {
	return uint8(s) & dotMask
}

// Has reports whether dot d is raised.
func (s DotSet) Has(d int) bool {
	if !ValidDot(d) {
		return false
	}
	return s&(1<<(d-1)) != 0
}

// With returns s with dot d raised. Invalid dots leave s unchanged.
func (s DotSet) With(d int) DotSet {
	if !ValidDot(d) {
		return s
	}
	return s | 1<<(d-1)
}

// Without returns s with dot d lowered.
func (s DotSet) Without(d int) DotSet {
	if !ValidDot(d) {
		return s
	}
	return s &^ (1 << (d - 1))
}

// IsEmpty reports whether no dot is raised.
func (s DotSet) IsEmpty() bool {
	return s.Bits() == 0
}

// Len returns the number of raised dots.
func (s DotSet) Len() int {
	n := 0
	for b := s.Bits(); b != 0; b &= b - 1 {
		n++
	}
	return n
}

// Dots returns the raised dots in ascending order.
func (s DotSet) Dots() []int {
	dots := make([]int, 0, MaxDot)
	for d := MinDot; d <= MaxDot; d++ {
		if s.Has(d) {
			dots = append(dots, d)
		}
	}
	return dots
}

// String returns the dots joined with dashes, e.g. "1-4-6".
// The empty set renders as an empty string.
func (s DotSet) String() string {
	dots := s.Dots()
	parts := make([]string, len(dots))
	for i, d := range dots {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "-")
}

// ParseDotSet parses "146", "1-4-6", "1,4,6" or "1 4 6".
func ParseDotSet(s string) (DotSet, error) {
	var dots []int
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			dots = append(dots, int(r-'0'))
		case r == '-' || r == ',' || r == ' ':
		default:
			return Empty, fmt.Errorf("parsing dot-set %q: unexpected %q", s, r)
		}
	}
	return NewDotSet(dots...)
}
