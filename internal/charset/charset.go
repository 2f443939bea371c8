package charset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when a character set has no symbols.
	ErrEmpty = errors.New("charset: empty character set")

	// ErrDuplicate is returned when a symbol appears more than once.
	ErrDuplicate = errors.New("charset: duplicate symbol")
)

// Set is an ordered, immutable sequence of unique symbols. The first symbol is
// the fallback used for substitution and padding.
type Set struct {
	symbols []rune
	index   map[rune]int
}

func New(symbols []rune) (*Set, error) {
	if len(symbols) == 0 {
		return nil, ErrEmpty
	}
	index := make(map[rune]int, len(symbols))
	for i, r := range symbols {
		if _, ok := index[r]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, r)
		}
		index[r] = i
	}
	s := make([]rune, len(symbols))
	copy(s, symbols)
	return &Set{symbols: s, index: index}, nil
}

func FromString(symbols string) (*Set, error) {
	return New([]rune(symbols))
}

// MustFromString is like FromString but panics on error. Meant for presets.
func MustFromString(symbols string) *Set {
	s, err := FromString(symbols)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Set) Len() int       { return len(s.symbols) }
func (s *Set) Fallback() rune { return s.symbols[0] }

func (s *Set) Contains(r rune) bool {
	_, ok := s.index[r]
	return ok
}

// Index returns the position of r, or -1 when r is not a member.
func (s *Set) Index(r rune) int {
	if i, ok := s.index[r]; ok {
		return i
	}
	return -1
}

// At returns the symbol at position i, wrapping in both directions.
func (s *Set) At(i int) rune {
	n := len(s.symbols)
	return s.symbols[((i%n)+n)%n]
}

// Next returns the symbol one position after r in cyclic order. A rune that
// is not a member advances to the fallback.
func (s *Set) Next(r rune) rune {
	return s.At(s.Index(r) + 1)
}

func (s *Set) Symbols() []rune {
	c := make([]rune, len(s.symbols))
	copy(c, s.symbols)
	return c
}

func (s *Set) String() string { return string(s.symbols) }

// Sanitize maps input onto the set: members are kept, everything else becomes
// the fallback symbol. The result has the same number of runes as input.
func Sanitize(input string, s *Set) string {
	out := make([]rune, 0, len(input))
	fb := s.Fallback()
	for _, r := range input {
		if s.Contains(r) {
			out = append(out, r)
		} else {
			out = append(out, fb)
		}
	}
	return string(out)
}

// Blank returns n copies of the fallback symbol.
func Blank(s *Set, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = s.Fallback()
	}
	return string(out)
}
