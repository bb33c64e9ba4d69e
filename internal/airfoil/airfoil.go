// Package airfoil generates and analyzes airfoil section geometry:
// NACA 4- and 5-digit families, a free-form camber/thickness blend,
// unit-chord normalization, and thickness/edge property extraction.
package airfoil

import "errors"

// DefaultPoints is the per-surface point count used when a request leaves
// the count unset.
const DefaultPoints = 100

var (
	// ErrInvalidSpec reports a malformed or out-of-range airfoil description:
	// wrong designation length, non-digit characters, negative thickness,
	// unusable point counts, malformed coordinate input.
	ErrInvalidSpec = errors.New("invalid airfoil specification")

	// ErrDegenerate reports geometry that cannot be processed: zero chord
	// extent, too few points, or surface arcs that double back in x.
	ErrDegenerate = errors.New("degenerate airfoil geometry")
)
