package airfoil

import "fmt"

// A single surface point in chord units.
type Point struct {
	X float64
	Y float64
}

// Coordinates trace an airfoil surface loop: upper surface from trailing
// edge to leading edge, then lower surface from leading edge back to
// trailing edge. The leading edge point appears once; the trailing edge
// appears as both the first and last point and may carry a small vertical
// gap (the NACA thickness polynomial leaves the trailing edge open).
type Coordinates []Point

// Return points as [[x, y], ...] for external API compatibility.
func (c Coordinates) Pairs() [][]float64 {
	out := make([][]float64, len(c))
	for i, p := range c {
		out[i] = []float64{p.X, p.Y}
	}
	return out
}

// FromPairs builds a coordinate loop from [[x, y], ...] input.
func FromPairs(pairs [][]float64) (Coordinates, error) {
	out := make(Coordinates, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: coordinate %d has %d components, want 2", ErrInvalidSpec, i, len(p))
		}
		out = append(out, Point{X: p[0], Y: p[1]})
	}
	return out, nil
}

// Normalize rescales a section to unit chord: x is translated so the
// minimum becomes 0, then both axes are divided by the chord extent.
// Only x is translated; the camber line keeps its vertical position.
// Normalizing an already-normalized section is a no-op up to floating
// point noise.
func Normalize(c Coordinates) (Coordinates, error) {
	if len(c) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrDegenerate)
	}

	minX, maxX := c[0].X, c[0].X
	for _, p := range c[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
	}

	chord := maxX - minX
	if chord <= 0 {
		return nil, fmt.Errorf("%w: zero chord extent", ErrDegenerate)
	}

	out := make(Coordinates, len(c))
	for i, p := range c {
		out[i] = Point{X: (p.X - minX) / chord, Y: p.Y / chord}
	}

	return out, nil
}

// ScaleThickness returns a copy with every y multiplied by factor. Used by
// the L/D optimizer to thicken or thin a section without touching chord.
func (c Coordinates) ScaleThickness(factor float64) Coordinates {
	out := make(Coordinates, len(c))
	for i, p := range c {
		out[i] = Point{X: p.X, Y: p.Y * factor}
	}
	return out
}
