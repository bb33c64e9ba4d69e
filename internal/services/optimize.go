package services

import (
	"context"
	"fmt"
	"math"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/ports"
)

const defaultOptimizeIterations = 10

type OptimizeRequest struct {
	Airfoil    AirfoilSelector
	Condition  domain.FlightCondition
	Iterations int
}

type OptimizeOutcome struct {
	Baseline           domain.AeroResult
	Best               domain.AeroResult
	BestFactor         float64
	ImprovementPercent float64
	// Coordinates of the best variant; the baseline section when no
	// variant beat it.
	Coordinates airfoil.Coordinates
}

// OptimizeAirfoil searches for a better lift-to-drag ratio by scaling the
// section's thickness. Factors run evenly from 0.8 to 1.2; the strictly
// best L/D wins, so on a tie the earlier (thinner) variant is kept and
// the baseline survives when nothing beats it.
func OptimizeAirfoil(
	ctx context.Context,
	req OptimizeRequest,
	predictor ports.AeroPredictor,
) (OptimizeOutcome, error) {
	resolved, err := ResolveAirfoil(req.Airfoil)
	if err != nil {
		return OptimizeOutcome{}, err
	}
	if err := ValidateCondition(req.Condition); err != nil {
		return OptimizeOutcome{}, err
	}

	n := req.Iterations
	if n == 0 {
		n = defaultOptimizeIterations
	}
	if n < 5 || n > 50 {
		return OptimizeOutcome{}, requestErrorf("n_iterations must be between 5 and 50")
	}

	baseline, err := predictor.Predict(ctx, resolved.Coordinates, req.Condition)
	if err != nil {
		return OptimizeOutcome{}, &UpstreamError{Err: fmt.Errorf("optimize: baseline predict: %w", err)}
	}

	best := baseline
	bestFactor := 1.0
	bestCoords := resolved.Coordinates

	for i := 0; i < n; i++ {
		factor := 0.8 + 0.4*float64(i)/float64(n-1)
		variant := resolved.Coordinates.ScaleThickness(factor)

		res, err := predictor.Predict(ctx, variant, req.Condition)
		if err != nil {
			return OptimizeOutcome{}, &UpstreamError{Err: fmt.Errorf("optimize: variant %d predict: %w", i, err)}
		}

		if res.LD > best.LD {
			best = res
			bestFactor = factor
			bestCoords = variant
		}
	}

	improvement := 0.0
	if baseline.LD != 0 {
		improvement = math.Round(((best.LD/baseline.LD)-1)*100*10) / 10
	}

	return OptimizeOutcome{
		Baseline:           baseline,
		Best:               best,
		BestFactor:         bestFactor,
		ImprovementPercent: improvement,
		Coordinates:        bestCoords,
	}, nil
}
