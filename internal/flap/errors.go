package flap

import "errors"

var (
	// ErrNoCharset indicates a configuration without a usable character set.
	ErrNoCharset = errors.New("flap: character set is required")

	// ErrInvalidWidth indicates a negative minimum width.
	ErrInvalidWidth = errors.New("flap: minimum width must not be negative")

	// ErrInvalidStep indicates a non-positive tick interval.
	ErrInvalidStep = errors.New("flap: step interval must be positive")

	// ErrNoConvergence indicates a headless run hit its tick ceiling.
	ErrNoConvergence = errors.New("flap: transition did not converge")
)
