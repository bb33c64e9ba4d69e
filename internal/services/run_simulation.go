package services

import (
	"context"
	"fmt"
	"log"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/ports"
)

type SimulationRequest struct {
	Airfoil   AirfoilSelector
	Condition domain.FlightCondition
	UserID    *int64
}

type SimulationOutcome struct {
	Result      domain.AeroResult
	Coordinates airfoil.Coordinates
	Properties  airfoil.Properties
	// The persisted run record; nil when no repository is wired.
	Simulation *domain.Simulation
}

// RunSimulation resolves the requested airfoil, checks the flow envelope,
// asks the predictor for coefficients, and records the run. Recording
// failures are logged, never fatal: the prediction already happened and
// the caller should get it.
func RunSimulation(
	ctx context.Context,
	req SimulationRequest,
	predictor ports.AeroPredictor,
	repo ports.SimulationRepository,
) (SimulationOutcome, error) {
	resolved, err := ResolveAirfoil(req.Airfoil)
	if err != nil {
		return SimulationOutcome{}, err
	}
	if err := ValidateCondition(req.Condition); err != nil {
		return SimulationOutcome{}, err
	}

	props, err := airfoil.ComputeProperties(resolved.Coordinates)
	if err != nil {
		return SimulationOutcome{}, fmt.Errorf("run simulation: %w", err)
	}

	res, err := predictor.Predict(ctx, resolved.Coordinates, req.Condition)
	if err != nil {
		recordRun(ctx, repo, req, resolved, domain.AeroResult{}, err)
		return SimulationOutcome{}, &UpstreamError{Err: fmt.Errorf("run simulation: predict: %w", err)}
	}

	sim := recordRun(ctx, repo, req, resolved, res, nil)

	return SimulationOutcome{
		Result:      res,
		Coordinates: resolved.Coordinates,
		Properties:  props,
		Simulation:  sim,
	}, nil
}

func recordRun(
	ctx context.Context,
	repo ports.SimulationRepository,
	req SimulationRequest,
	resolved ResolvedAirfoil,
	res domain.AeroResult,
	predictErr error,
) *domain.Simulation {
	if repo == nil {
		return nil
	}

	sim := &domain.Simulation{
		UserID:      req.UserID,
		AirfoilType: resolved.Type,
		Designation: resolved.Designation,
		Camber:      resolved.Camber,
		Thickness:   resolved.Thickness,
		Alpha:       req.Condition.Alpha,
		Reynolds:    req.Condition.Reynolds,
		Mach:        req.Condition.Mach,
		Solver:      res.Solver,
		Status:      domain.SimulationCompleted,
		CL:          res.CL,
		CD:          res.CD,
		CM:          res.CM,
		LD:          res.LD,
		Converged:   res.Converged,
		TimeMS:      res.TimeMS,
	}
	if predictErr != nil {
		sim.Status = domain.SimulationFailed
		sim.ErrorMessage = predictErr.Error()
	}

	stored, err := repo.InsertSimulation(ctx, sim)
	if err != nil {
		log.Printf("record simulation failed: %v", err)
		return nil
	}
	return stored
}
