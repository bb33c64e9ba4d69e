package services

import (
	"context"
	"log"
	"math"
	"sync"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/ports"
)

const (
	// Upper bound on stations per sweep; keeps a typo'd alpha_step from
	// turning one request into thousands of predictions.
	maxPolarStations = 100
	polarWorkers     = 4
)

type PolarRequest struct {
	Airfoil   AirfoilSelector
	AlphaMin  float64
	AlphaMax  float64
	AlphaStep float64
	Reynolds  float64
	Mach      float64
}

// One station of a polar sweep. Err is set when that station's prediction
// failed; the rest of the sweep still stands.
type PolarPoint struct {
	Alpha  float64
	Result domain.AeroResult
	Err    string
}

type PolarOutcome struct {
	Points      []PolarPoint
	Coordinates airfoil.Coordinates
}

// PolarSweep predicts coefficients across a range of angles of attack.
// The sweep goes to the batch endpoint when the predictor supports it and
// falls back to bounded-concurrency single predictions when it does not
// (or when the batch call fails). Points come back ordered by alpha
// regardless of completion order.
func PolarSweep(
	ctx context.Context,
	req PolarRequest,
	predictor ports.AeroPredictor,
) (PolarOutcome, error) {
	resolved, err := ResolveAirfoil(req.Airfoil)
	if err != nil {
		return PolarOutcome{}, err
	}

	if req.AlphaStep <= 0 {
		return PolarOutcome{}, requestErrorf("alpha_step must be positive")
	}
	if req.AlphaMin < -20 || req.AlphaMin > 30 {
		return PolarOutcome{}, requestErrorf("alpha_min must be between -20 and 30 degrees")
	}
	if req.AlphaMax < -20 || req.AlphaMax > 30 {
		return PolarOutcome{}, requestErrorf("alpha_max must be between -20 and 30 degrees")
	}
	if err := ValidateCondition(domain.FlightCondition{Alpha: 0, Reynolds: req.Reynolds, Mach: req.Mach}); err != nil {
		return PolarOutcome{}, err
	}

	alphas := sweepStations(req.AlphaMin, req.AlphaMax, req.AlphaStep)
	if len(alphas) > maxPolarStations {
		return PolarOutcome{}, requestErrorf("polar sweep has %d stations, limit is %d", len(alphas), maxPolarStations)
	}

	points := make([]PolarPoint, len(alphas))
	for i, a := range alphas {
		points[i].Alpha = a
	}
	if len(alphas) == 0 {
		return PolarOutcome{Points: points, Coordinates: resolved.Coordinates}, nil
	}

	conds := make([]domain.FlightCondition, len(alphas))
	for i, a := range alphas {
		conds[i] = domain.FlightCondition{Alpha: a, Reynolds: req.Reynolds, Mach: req.Mach}
	}

	if bp, ok := predictor.(ports.BatchAeroPredictor); ok {
		results, err := bp.PredictBatch(ctx, resolved.Coordinates, conds)
		if err == nil {
			for i, res := range results {
				points[i].Result = res
			}
			return PolarOutcome{Points: points, Coordinates: resolved.Coordinates}, nil
		}
		log.Printf("polar batch predict failed, falling back to single predictions: %v", err)
	}

	sem := make(chan struct{}, polarWorkers)
	var wg sync.WaitGroup

	for i := range conds {
		wg.Add(1)
		go func(i int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			res, err := predictor.Predict(ctx, resolved.Coordinates, conds[i])
			if err != nil {
				points[i].Err = err.Error()
				return
			}
			points[i].Result = res
		}(i)
	}
	wg.Wait()

	return PolarOutcome{Points: points, Coordinates: resolved.Coordinates}, nil
}

// Stations from min to max inclusive. An inverted range yields no
// stations rather than an error.
func sweepStations(min, max, step float64) []float64 {
	if max < min {
		return nil
	}
	n := int(math.Floor((max-min)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = min + float64(i)*step
	}
	return out
}
