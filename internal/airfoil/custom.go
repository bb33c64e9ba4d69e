package airfoil

import "math"

// Generate produces the free-form blend section. The camber parabola peaks
// at mid-chord (camber/4) and the sqrt envelope closes the trailing edge
// exactly, so a zero-camber blend is symmetric about the chord line.
// Thickness is applied vertically; the blend has no camber-normal rotation.
func (s CamberThickness) Generate(n int, cosineSpacing bool) (Coordinates, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	n, err := resolvePointCount(n)
	if err != nil {
		return nil, err
	}

	xs := stations(n, cosineSpacing)
	yu := make([]float64, n)
	yl := make([]float64, n)

	for i, x := range xs {
		yt := s.Thickness * math.Sqrt(x) * (1 - x)
		yc := s.Camber * x * (1 - x)
		yu[i] = yc + yt
		yl[i] = yc - yt
	}

	return assemble(xs, yu, xs, yl), nil
}
