// Package charset defines the ordered symbol sets a split-flap board cycles
// through, and the sanitizer that maps arbitrary text onto a set.
//
// Cells advance through a [Set] in order and wrap from the last symbol back to
// the first. The first symbol doubles as the fallback: [Sanitize] substitutes
// it for any rune that is not a member, and alignment pads with it.
package charset
