package services

import (
	"context"
	"errors"
	"testing"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
)

// Predictor scripted by call order: the first call is the baseline, then
// one call per thickness factor.
func scriptedPredictor(t *testing.T, lds []float64) *stubPredictor {
	t.Helper()
	p := &stubPredictor{}
	p.fn = func(airfoil.Coordinates, domain.FlightCondition) (domain.AeroResult, error) {
		if p.calls > len(lds) {
			t.Fatalf("predictor called %d times, scripted for %d", p.calls, len(lds))
		}
		ld := lds[p.calls-1]
		return domain.AeroResult{CL: 1, CD: 1 / ld, LD: ld, Converged: true}, nil
	}
	return p
}

func TestOptimizeAirfoilPicksBestFactor(t *testing.T) {
	// Baseline 50, then factors 0.8..1.2; the first 80 must win the tie.
	predictor := scriptedPredictor(t, []float64{50, 30, 80, 50, 80, 20})

	out, err := OptimizeAirfoil(context.Background(), OptimizeRequest{
		Airfoil:    AirfoilSelector{Type: "naca", Designation: "2412"},
		Condition:  domain.FlightCondition{Alpha: 5, Reynolds: 1e6},
		Iterations: 5,
	}, predictor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Baseline.LD != 50 {
		t.Fatalf("baseline LD = %g, want 50", out.Baseline.LD)
	}
	if out.Best.LD != 80 {
		t.Fatalf("best LD = %g, want 80", out.Best.LD)
	}
	wantFactor := 0.8 + 0.4*float64(1)/float64(4)
	if out.BestFactor != wantFactor {
		t.Fatalf("best factor = %g, want %g", out.BestFactor, wantFactor)
	}
	if out.ImprovementPercent != 60 {
		t.Fatalf("improvement = %g, want 60", out.ImprovementPercent)
	}
	if predictor.calls != 6 {
		t.Fatalf("predictor called %d times, want 6", predictor.calls)
	}
}

func TestOptimizeAirfoilBaselineSurvives(t *testing.T) {
	predictor := scriptedPredictor(t, []float64{50, 50, 50, 50, 50, 50})

	out, err := OptimizeAirfoil(context.Background(), OptimizeRequest{
		Airfoil:    AirfoilSelector{Type: "naca", Designation: "0012"},
		Condition:  domain.FlightCondition{Alpha: 5, Reynolds: 1e6},
		Iterations: 5,
	}, predictor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.BestFactor != 1.0 {
		t.Fatalf("best factor = %g, want 1.0 when nothing beats the baseline", out.BestFactor)
	}
	if out.ImprovementPercent != 0 {
		t.Fatalf("improvement = %g, want 0", out.ImprovementPercent)
	}
}

func TestOptimizeAirfoilZeroBaselineLD(t *testing.T) {
	lds := make([]float64, 11)
	lds[0] = 0
	for i := 1; i < len(lds); i++ {
		lds[i] = 5
	}
	predictor := &stubPredictor{}
	predictor.fn = func(airfoil.Coordinates, domain.FlightCondition) (domain.AeroResult, error) {
		return domain.AeroResult{LD: lds[predictor.calls-1]}, nil
	}

	out, err := OptimizeAirfoil(context.Background(), OptimizeRequest{
		Airfoil:   AirfoilSelector{Type: "naca", Designation: "0012"},
		Condition: domain.FlightCondition{Alpha: 0, Reynolds: 1e6},
	}, predictor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.BestFactor != 0.8 {
		t.Fatalf("best factor = %g, want 0.8 (first improving variant)", out.BestFactor)
	}
	if out.ImprovementPercent != 0 {
		t.Fatalf("improvement = %g, want 0 for a zero baseline", out.ImprovementPercent)
	}
	if predictor.calls != 11 {
		t.Fatalf("predictor called %d times, want 11 (default 10 iterations)", predictor.calls)
	}
}

func TestOptimizeAirfoilIterationBounds(t *testing.T) {
	predictor := &stubPredictor{fn: func(airfoil.Coordinates, domain.FlightCondition) (domain.AeroResult, error) {
		return domain.AeroResult{LD: 1}, nil
	}}

	for _, n := range []int{3, 51} {
		_, err := OptimizeAirfoil(context.Background(), OptimizeRequest{
			Airfoil:    AirfoilSelector{Type: "naca", Designation: "0012"},
			Condition:  domain.FlightCondition{Alpha: 5, Reynolds: 1e6},
			Iterations: n,
		}, predictor)

		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("n=%d: expected RequestError, got %v", n, err)
		}
		if reqErr.Msg != "n_iterations must be between 5 and 50" {
			t.Fatalf("n=%d: message = %q", n, reqErr.Msg)
		}
	}
}
