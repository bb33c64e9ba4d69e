package ports

import (
	"context"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
)

// Contract for estimating aerodynamic coefficients of an airfoil section.
type AeroPredictor interface {
	// Return predicted coefficients for one airfoil at one flight condition.
	Predict(ctx context.Context, coords airfoil.Coordinates, cond domain.FlightCondition) (domain.AeroResult, error)
}
