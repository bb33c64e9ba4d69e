package ports

import (
	"context"

	"airfoil-lab-service/internal/domain"
)

// Port: a boundary for persisting simulation runs and their results.
type SimulationRepository interface {
	// Insert a completed run and return it with its assigned ID.
	InsertSimulation(ctx context.Context, s *domain.Simulation) (*domain.Simulation, error)
	// Look up a run by ID. Returns nil when no such run exists.
	GetSimulation(ctx context.Context, id int64) (*domain.Simulation, error)
	// Return the most recent runs, newest first. A nil userID lists runs
	// for all users.
	ListSimulations(ctx context.Context, userID *int64, limit int) ([]*domain.Simulation, error)
}
