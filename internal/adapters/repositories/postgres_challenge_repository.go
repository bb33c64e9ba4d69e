package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/platform/obs"
)

// Postgres-backed implementation of the ChallengeRepository port.
// Constraints and hints are stored as JSONB.
type PostgresChallengeRepository struct{ DB *sql.DB }

func NewPostgresChallengeRepository(db *sql.DB) *PostgresChallengeRepository {
	return &PostgresChallengeRepository{DB: db}
}

const challengeColumns = `
	id, slug, title, difficulty, category, description,
	constraints, hints, points, sort_order, active, created_at`

// Return all active challenges ordered by difficulty and sort order.
func (r *PostgresChallengeRepository) ListChallenges(ctx context.Context) (_ []*domain.Challenge, err error) {
	defer obs.Time(ctx, "challenges.List")(&err)

	if r.DB == nil {
		return nil, errors.New("challenge repository: DB is nil")
	}

	query := `
	SELECT` + challengeColumns + `
	FROM challenges
	WHERE active
	ORDER BY sort_order, id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	defer rows.Close()

	challenges := make([]*domain.Challenge, 0, 8)
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("list challenges: scan row: %w", err)
		}
		challenges = append(challenges, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list challenges: row iteration: %w", err)
	}

	return challenges, nil
}

// Look up a challenge by slug. Returns nil when no such challenge exists.
func (r *PostgresChallengeRepository) GetChallengeBySlug(ctx context.Context, slug string) (*domain.Challenge, error) {
	if r.DB == nil {
		return nil, errors.New("challenge repository: DB is nil")
	}

	query := `SELECT` + challengeColumns + ` FROM challenges WHERE slug = $1;`

	c, err := scanChallenge(r.DB.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get challenge %q: %w", slug, err)
	}

	return c, nil
}

// Return one random active challenge, optionally filtered by difficulty.
// Returns nil when no challenge matches.
func (r *PostgresChallengeRepository) RandomChallenge(ctx context.Context, difficulty string) (*domain.Challenge, error) {
	if r.DB == nil {
		return nil, errors.New("challenge repository: DB is nil")
	}

	query := `
	SELECT` + challengeColumns + `
	FROM challenges
	WHERE active AND ($1 = '' OR difficulty = $1)
	ORDER BY random()
	LIMIT 1;
	`

	c, err := scanChallenge(r.DB.QueryRowContext(ctx, query, difficulty))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("random challenge: %w", err)
	}

	return c, nil
}

// Insert or update a challenge keyed by slug. Used by the seeder.
func (r *PostgresChallengeRepository) UpsertChallenge(ctx context.Context, c *domain.Challenge) (err error) {
	defer obs.Time(ctx, "challenges.Upsert")(&err)

	if r.DB == nil {
		return errors.New("challenge repository: DB is nil")
	}

	constraints, err := json.Marshal(c.Constraints)
	if err != nil {
		return fmt.Errorf("upsert challenge %q: encode constraints: %w", c.Slug, err)
	}
	hints, err := json.Marshal(c.Hints)
	if err != nil {
		return fmt.Errorf("upsert challenge %q: encode hints: %w", c.Slug, err)
	}

	query := `
	INSERT INTO challenges (slug, title, difficulty, category, description, constraints, hints, points, sort_order, active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (slug) DO UPDATE SET
		title = EXCLUDED.title,
		difficulty = EXCLUDED.difficulty,
		category = EXCLUDED.category,
		description = EXCLUDED.description,
		constraints = EXCLUDED.constraints,
		hints = EXCLUDED.hints,
		points = EXCLUDED.points,
		sort_order = EXCLUDED.sort_order,
		active = EXCLUDED.active;
	`
	if _, err := r.DB.ExecContext(ctx, query,
		c.Slug, c.Title, c.Difficulty, c.Category, c.Description,
		constraints, hints, c.Points, c.SortOrder, c.Active,
	); err != nil {
		return fmt.Errorf("upsert challenge %q: %w", c.Slug, err)
	}

	return nil
}

// Insert a scored attempt and return it with its assigned ID.
func (r *PostgresChallengeRepository) InsertSubmission(ctx context.Context, sub *domain.ChallengeSubmission) (_ *domain.ChallengeSubmission, err error) {
	defer obs.Time(ctx, "challenges.InsertSubmission")(&err)

	if r.DB == nil {
		return nil, errors.New("challenge repository: DB is nil")
	}

	query := `
	INSERT INTO challenge_submissions (
		challenge_id, user_id, designation, alpha, reynolds,
		cl, cd, l_d, passed, points_awarded, feedback
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id, created_at;
	`
	out := *sub
	err = r.DB.QueryRowContext(ctx, query,
		sub.ChallengeID, sub.UserID, sub.Designation, sub.Alpha, sub.Reynolds,
		sub.CL, sub.CD, sub.LD, sub.Passed, sub.PointsAwarded, sub.Feedback,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}

	return &out, nil
}

// Return a user's attempts, newest first.
func (r *PostgresChallengeRepository) ListSubmissions(ctx context.Context, userID int64) ([]*domain.ChallengeSubmission, error) {
	if r.DB == nil {
		return nil, errors.New("challenge repository: DB is nil")
	}

	query := `
	SELECT id, challenge_id, user_id, designation, alpha, reynolds,
		cl, cd, l_d, passed, points_awarded, feedback, created_at
	FROM challenge_submissions
	WHERE user_id = $1
	ORDER BY created_at DESC, id DESC;
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	subs := make([]*domain.ChallengeSubmission, 0, 16)
	for rows.Next() {
		var sub domain.ChallengeSubmission
		var uid sql.NullInt64
		err := rows.Scan(
			&sub.ID, &sub.ChallengeID, &uid, &sub.Designation, &sub.Alpha, &sub.Reynolds,
			&sub.CL, &sub.CD, &sub.LD, &sub.Passed, &sub.PointsAwarded, &sub.Feedback, &sub.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list submissions: scan row: %w", err)
		}
		if uid.Valid {
			sub.UserID = &uid.Int64
		}
		subs = append(subs, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: row iteration: %w", err)
	}

	return subs, nil
}

// Return the sum of points a user earned across passed attempts.
func (r *PostgresChallengeRepository) TotalPoints(ctx context.Context, userID int64) (int, error) {
	if r.DB == nil {
		return 0, errors.New("challenge repository: DB is nil")
	}

	query := `
	SELECT COALESCE(SUM(points_awarded), 0)
	FROM challenge_submissions
	WHERE user_id = $1 AND passed;
	`
	var total int
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total points for user %d: %w", userID, err)
	}

	return total, nil
}

func scanChallenge(row rowScanner) (*domain.Challenge, error) {
	var c domain.Challenge
	var constraints, hints []byte

	err := row.Scan(
		&c.ID, &c.Slug, &c.Title, &c.Difficulty, &c.Category, &c.Description,
		&constraints, &hints, &c.Points, &c.SortOrder, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(constraints, &c.Constraints); err != nil {
		return nil, fmt.Errorf("decode constraints for %q: %w", c.Slug, err)
	}
	if err := json.Unmarshal(hints, &c.Hints); err != nil {
		return nil, fmt.Errorf("decode hints for %q: %w", c.Slug, err)
	}

	return &c, nil
}
