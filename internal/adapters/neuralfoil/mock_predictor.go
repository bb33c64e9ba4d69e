package neuralfoil

import (
	"context"
	"fmt"
	"math"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
)

// MockPredictor returns thin-airfoil-theory estimates without any network
// dependency. Used in tests and when no inference service is configured.
type MockPredictor struct{}

func NewMockPredictor() *MockPredictor {
	return &MockPredictor{}
}

func (m *MockPredictor) Predict(
	ctx context.Context,
	coords airfoil.Coordinates,
	cond domain.FlightCondition,
) (domain.AeroResult, error) {
	props, err := airfoil.ComputeProperties(coords)
	if err != nil {
		return domain.AeroResult{}, fmt.Errorf("mock predict: %w", err)
	}

	camber := maxCamber(coords)
	alphaRad := cond.Alpha * math.Pi / 180

	cl := 2 * math.Pi * (alphaRad + 2*camber)
	// Lift stops growing past stall; the real model handles separation.
	if cl > 1.6 {
		cl = 1.6
	} else if cl < -1.6 {
		cl = -1.6
	}

	t := props.MaxThickness / props.Chord
	cd := 0.006 + 0.01*cl*cl + 0.1*t*t
	if cond.Reynolds > 0 {
		cd *= math.Pow(1e6/cond.Reynolds, 0.2)
	}

	res := domain.AeroResult{
		CL:        cl,
		CD:        cd,
		CM:        -math.Pi * camber,
		Converged: true,
		Solver:    "mock",
	}
	if cd != 0 {
		res.LD = cl / cd
	}

	return res, nil
}

// maxCamber estimates the largest mean-line offset by averaging opposing
// surface points. Exact only for the symmetric loops the generators
// produce, which is all a mock needs.
func maxCamber(c airfoil.Coordinates) float64 {
	n := len(c)
	peak := 0.0
	for i := 0; i < n/2; i++ {
		mid := (c[i].Y + c[n-1-i].Y) / 2
		if math.Abs(mid) > math.Abs(peak) {
			peak = mid
		}
	}
	return peak
}
