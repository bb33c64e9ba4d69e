package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createUsersQuery := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		skill_level TEXT NOT NULL DEFAULT 'beginner',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_login TIMESTAMPTZ
	);
	`

	createSimulationsQuery := `
	CREATE TABLE IF NOT EXISTS simulations (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id),
		airfoil_type TEXT NOT NULL,
		designation TEXT NOT NULL,
		camber DOUBLE PRECISION,
		thickness DOUBLE PRECISION,
		alpha DOUBLE PRECISION NOT NULL,
		reynolds DOUBLE PRECISION NOT NULL,
		mach DOUBLE PRECISION NOT NULL DEFAULT 0,
		solver TEXT NOT NULL,
		status TEXT NOT NULL,
		cl DOUBLE PRECISION NOT NULL DEFAULT 0,
		cd DOUBLE PRECISION NOT NULL DEFAULT 0,
		cm DOUBLE PRECISION NOT NULL DEFAULT 0,
		l_d DOUBLE PRECISION NOT NULL DEFAULT 0,
		converged BOOLEAN NOT NULL DEFAULT false,
		time_ms DOUBLE PRECISION NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createChallengesQuery := `
	CREATE TABLE IF NOT EXISTS challenges (
		id BIGSERIAL PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL,
		constraints JSONB NOT NULL,
		hints JSONB NOT NULL DEFAULT '[]',
		points INTEGER NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createSubmissionsQuery := `
	CREATE TABLE IF NOT EXISTS challenge_submissions (
		id BIGSERIAL PRIMARY KEY,
		challenge_id BIGINT NOT NULL REFERENCES challenges(id),
		user_id BIGINT REFERENCES users(id),
		designation TEXT NOT NULL,
		alpha DOUBLE PRECISION NOT NULL,
		reynolds DOUBLE PRECISION NOT NULL,
		cl DOUBLE PRECISION NOT NULL,
		cd DOUBLE PRECISION NOT NULL,
		l_d DOUBLE PRECISION NOT NULL,
		passed BOOLEAN NOT NULL,
		points_awarded INTEGER NOT NULL DEFAULT 0,
		feedback TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createChatQuery := `
	CREATE TABLE IF NOT EXISTS chat_messages (
		id BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		user_id BIGINT REFERENCES users(id),
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createSimulationsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_simulations_user_created
	ON simulations(user_id, created_at DESC);
	`

	createSubmissionsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_submissions_user_created
	ON challenge_submissions(user_id, created_at DESC);
	`

	createChatIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_chat_session_created
	ON chat_messages(session_id, created_at);
	`

	statements := []string{
		createUsersQuery,
		createSimulationsQuery,
		createChallengesQuery,
		createSubmissionsQuery,
		createChatQuery,
		createSimulationsIndexQuery,
		createSubmissionsIndexQuery,
		createChatIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Drop every table owned by the service. Used by the dbtool reset command.
func DropSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("drop schema: DB is nil")
	}

	query := `
	DROP TABLE IF EXISTS
		chat_messages,
		challenge_submissions,
		challenges,
		simulations,
		users
	CASCADE;
	`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}

	return nil
}
