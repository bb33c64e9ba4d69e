package ports

import (
	"context"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
)

// Optional extension of AeroPredictor that supports batched sweeps.
type BatchAeroPredictor interface {
	AeroPredictor
	// Return predictions for one airfoil across many flight conditions,
	// ordered the same as conds.
	PredictBatch(ctx context.Context, coords airfoil.Coordinates, conds []domain.FlightCondition) ([]domain.AeroResult, error)
}
