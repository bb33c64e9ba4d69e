package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/platform/obs"
)

// Postgres-backed implementation of the SimulationRepository port.
type PostgresSimulationRepository struct{ DB *sql.DB }

func NewPostgresSimulationRepository(db *sql.DB) *PostgresSimulationRepository {
	return &PostgresSimulationRepository{DB: db}
}

const simulationColumns = `
	id, user_id, airfoil_type, designation, camber, thickness,
	alpha, reynolds, mach, solver, status,
	cl, cd, cm, l_d, converged, time_ms, error_message, created_at`

// Insert a completed run and return it with its assigned ID.
func (r *PostgresSimulationRepository) InsertSimulation(ctx context.Context, s *domain.Simulation) (_ *domain.Simulation, err error) {
	defer obs.Time(ctx, "simulations.Insert")(&err)

	if r.DB == nil {
		return nil, errors.New("simulation repository: DB is nil")
	}

	query := `
	INSERT INTO simulations (
		user_id, airfoil_type, designation, camber, thickness,
		alpha, reynolds, mach, solver, status,
		cl, cd, cm, l_d, converged, time_ms, error_message
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	RETURNING id, created_at;
	`
	out := *s
	err = r.DB.QueryRowContext(ctx, query,
		s.UserID, s.AirfoilType, s.Designation, s.Camber, s.Thickness,
		s.Alpha, s.Reynolds, s.Mach, s.Solver, s.Status,
		s.CL, s.CD, s.CM, s.LD, s.Converged, s.TimeMS, s.ErrorMessage,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert simulation: %w", err)
	}

	return &out, nil
}

// Look up a run by ID. Returns nil when no such run exists.
func (r *PostgresSimulationRepository) GetSimulation(ctx context.Context, id int64) (*domain.Simulation, error) {
	if r.DB == nil {
		return nil, errors.New("simulation repository: DB is nil")
	}

	query := `SELECT` + simulationColumns + ` FROM simulations WHERE id = $1;`

	s, err := scanSimulation(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get simulation %d: %w", id, err)
	}

	return s, nil
}

// Return the most recent runs, newest first. A nil userID lists runs for
// all users.
func (r *PostgresSimulationRepository) ListSimulations(ctx context.Context, userID *int64, limit int) (_ []*domain.Simulation, err error) {
	defer obs.Time(ctx, "simulations.List")(&err)

	if r.DB == nil {
		return nil, errors.New("simulation repository: DB is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT` + simulationColumns + `
	FROM simulations
	WHERE ($1::bigint IS NULL OR user_id = $1)
	ORDER BY created_at DESC, id DESC
	LIMIT $2;
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	defer rows.Close()

	sims := make([]*domain.Simulation, 0, limit)
	for rows.Next() {
		s, err := scanSimulation(rows)
		if err != nil {
			return nil, fmt.Errorf("list simulations: scan row: %w", err)
		}
		sims = append(sims, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list simulations: row iteration: %w", err)
	}

	return sims, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSimulation(row rowScanner) (*domain.Simulation, error) {
	var s domain.Simulation
	var userID sql.NullInt64
	var camber, thickness sql.NullFloat64

	err := row.Scan(
		&s.ID, &userID, &s.AirfoilType, &s.Designation, &camber, &thickness,
		&s.Alpha, &s.Reynolds, &s.Mach, &s.Solver, &s.Status,
		&s.CL, &s.CD, &s.CM, &s.LD, &s.Converged, &s.TimeMS, &s.ErrorMessage, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		s.UserID = &userID.Int64
	}
	if camber.Valid {
		s.Camber = &camber.Float64
	}
	if thickness.Valid {
		s.Thickness = &thickness.Float64
	}

	return &s, nil
}
