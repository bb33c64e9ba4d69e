package airfoil

import (
	"fmt"
	"math"
	"sort"
)

// Number of chordwise stations scanned for the thickness distribution.
const thicknessStations = 100

// Properties summarizes section geometry derived from a coordinate loop.
// Values are in the input's units; run after Normalize for chord fractions.
type Properties struct {
	MaxThickness         float64
	MaxThicknessLocation float64
	LeadingEdge          Point
	TrailingEdgeGap      float64
	Chord                float64
}

// ComputeProperties derives thickness and edge metrics from a surface loop.
// The loop is split at its minimum-x point into an upper arc (start to
// leading edge) and a lower arc (leading edge to end); each arc must be
// monotonic in x along its own direction, otherwise the geometry is
// rejected as self-intersecting rather than misinterpolated.
func ComputeProperties(c Coordinates) (Properties, error) {
	if len(c) < 3 {
		return Properties{}, fmt.Errorf("%w: need at least 3 points, got %d", ErrDegenerate, len(c))
	}

	leIdx := 0
	minX, maxX := c[0].X, c[0].X
	for i, p := range c {
		if p.X < minX {
			minX = p.X
			leIdx = i
		}
		if p.X > maxX {
			maxX = p.X
		}
	}

	chord := maxX - minX
	if chord <= 0 {
		return Properties{}, fmt.Errorf("%w: zero chord extent", ErrDegenerate)
	}

	// A leading edge on the loop boundary leaves one arc with a single
	// point, which cannot be interpolated.
	if leIdx == 0 || leIdx == len(c)-1 {
		return Properties{}, fmt.Errorf("%w: leading edge at loop boundary", ErrDegenerate)
	}

	// Reverse the upper arc so both arcs ascend in x for interpolation.
	upper := make([]Point, leIdx+1)
	for i := range upper {
		upper[i] = c[leIdx-i]
	}
	lower := c[leIdx:]

	if !ascendingX(upper) || !ascendingX(lower) {
		return Properties{}, fmt.Errorf("%w: surface arcs are not monotonic in x", ErrDegenerate)
	}

	maxT := math.Inf(-1)
	maxLoc := minX
	for i := 0; i < thicknessStations; i++ {
		x := minX + chord*float64(i)/float64(thicknessStations-1)
		th := interpY(upper, x) - interpY(lower, x)
		if th > maxT {
			maxT = th
			maxLoc = x
		}
	}

	return Properties{
		MaxThickness:         maxT,
		MaxThicknessLocation: maxLoc,
		LeadingEdge:          c[leIdx],
		TrailingEdgeGap:      math.Abs(c[0].Y - c[len(c)-1].Y),
		Chord:                chord,
	}, nil
}

// ascendingX reports whether points never step backwards in x. Equal
// adjacent x is allowed; interpolation treats it as a vertical face.
func ascendingX(pts []Point) bool {
	for i := 1; i < len(pts); i++ {
		if pts[i].X < pts[i-1].X {
			return false
		}
	}
	return true
}

// interpY linearly interpolates y at x against ascending points, clamping
// to the end values outside the covered range.
func interpY(pts []Point, x float64) float64 {
	if x <= pts[0].X {
		return pts[0].Y
	}
	if x >= pts[len(pts)-1].X {
		return pts[len(pts)-1].Y
	}

	i := sort.Search(len(pts), func(i int) bool { return pts[i].X >= x })
	a, b := pts[i-1], pts[i]

	return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X)
}
