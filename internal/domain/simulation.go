package domain

import "time"

// Flow conditions for a single prediction.
type FlightCondition struct {
	Alpha    float64
	Reynolds float64
	Mach     float64
}

// Aerodynamic coefficients returned by a predictor for one flow condition.
// LD is derived as CL/CD with a zero guard, never a division by zero.
type AeroResult struct {
	CL        float64
	CD        float64
	CM        float64
	LD        float64
	Converged bool
	TimeMS    float64
	Solver    string
}

// StallRisk classifies how close a result is to stall at the given angle
// of attack.
func (r AeroResult) StallRisk(alpha float64) string {
	switch {
	case alpha > 15 || r.CL > 1.5:
		return "high"
	case alpha > 10 || r.CL > 1.2:
		return "medium"
	default:
		return "low"
	}
}

// EfficiencyRating grades the lift-to-drag ratio on the scale used across
// the learning material.
func (r AeroResult) EfficiencyRating() string {
	switch {
	case r.LD > 100:
		return "excellent"
	case r.LD > 50:
		return "good"
	case r.LD > 25:
		return "fair"
	default:
		return "poor"
	}
}

// Simulation lifecycle states. Runs are recorded after the predictor
// answers (or fails), so only terminal states are stored.
const (
	SimulationCompleted = "completed"
	SimulationFailed    = "failed"
)

// Represents one recorded prediction run: the airfoil description, the
// flow conditions, and the resulting coefficients.
type Simulation struct {
	ID           int64
	UserID       *int64
	AirfoilType  string
	Designation  string
	Camber       *float64
	Thickness    *float64
	Alpha        float64
	Reynolds     float64
	Mach         float64
	Solver       string
	Status       string
	CL           float64
	CD           float64
	CM           float64
	LD           float64
	Converged    bool
	TimeMS       float64
	ErrorMessage string
	CreatedAt    time.Time
}
