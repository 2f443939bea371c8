// Package align pads display values to a fixed cell width.
package align

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/splitflap/internal/charset"
)

var ErrDirection = errors.New("align: unknown pad direction")

// Direction selects where padding goes. Left pads before the value, so the
// value appears right-aligned.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Left, fmt.Errorf("%w: %q", ErrDirection, s)
}

// Align returns the cells of value padded with the fallback symbol up to
// minWidth. Values already at least minWidth long are returned unchanged;
// minWidth <= 0 disables padding.
func Align(value string, set *charset.Set, minWidth int, dir Direction) []rune {
	return pad([]rune(value), set.Fallback(), minWidth, dir)
}

// Pair aligns the previous and current frame to one shared width so that
// position i of both sequences always refers to the same cell.
func Pair(prev, curr string, set *charset.Set, minWidth int, dir Direction) ([]rune, []rune) {
	p, c := []rune(prev), []rune(curr)
	width := max(minWidth, len(p), len(c))
	fb := set.Fallback()
	return pad(p, fb, width, dir), pad(c, fb, width, dir)
}

func pad(cells []rune, fill rune, width int, dir Direction) []rune {
	n := width - len(cells)
	if n <= 0 {
		out := make([]rune, len(cells))
		copy(out, cells)
		return out
	}
	out := make([]rune, 0, width)
	if dir == Right {
		out = append(out, cells...)
	}
	for i := 0; i < n; i++ {
		out = append(out, fill)
	}
	if dir == Left {
		out = append(out, cells...)
	}
	return out
}
