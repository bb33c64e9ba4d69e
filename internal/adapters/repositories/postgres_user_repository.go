package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/platform/obs"
	"airfoil-lab-service/internal/ports"
)

// Postgres unique_violation.
const pgUniqueViolation = "23505"

// Postgres-backed implementation of the UserRepository port.
type PostgresUserRepository struct{ DB *sql.DB }

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// Insert a new user and return it with its assigned ID.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, u *domain.User) (_ *domain.User, err error) {
	defer obs.Time(ctx, "users.Create")(&err)

	if r.DB == nil {
		return nil, errors.New("user repository: DB is nil")
	}

	query := `
	INSERT INTO users (username, email, password_hash, skill_level)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at;
	`
	out := *u
	err = r.DB.QueryRowContext(ctx, query, u.Username, u.Email, u.PasswordHash, u.SkillLevel).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("create user %q: %w", u.Username, ports.ErrDuplicate)
		}
		return nil, fmt.Errorf("create user %q: %w", u.Username, err)
	}

	return &out, nil
}

// Look up a user by username. Returns nil when no such user exists.
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUser(ctx, "username = $1", username)
}

// Look up a user by ID. Returns nil when no such user exists.
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getUser(ctx, "id = $1", id)
}

func (r *PostgresUserRepository) getUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	if r.DB == nil {
		return nil, errors.New("user repository: DB is nil")
	}

	query := `
	SELECT id, username, email, password_hash, skill_level, created_at, last_login
	FROM users
	WHERE ` + where + `;
	`

	var u domain.User
	var lastLogin sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.SkillLevel, &u.CreatedAt, &lastLogin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}

	return &u, nil
}

// Record the time of a successful login.
func (r *PostgresUserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) (err error) {
	defer obs.Time(ctx, "users.TouchLastLogin")(&err)

	if r.DB == nil {
		return errors.New("user repository: DB is nil")
	}

	query := `UPDATE users SET last_login = $2 WHERE id = $1;`
	if _, err := r.DB.ExecContext(ctx, query, id, at); err != nil {
		return fmt.Errorf("touch last login for user %d: %w", id, err)
	}

	return nil
}
