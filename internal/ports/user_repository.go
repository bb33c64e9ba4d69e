package ports

import (
	"context"
	"errors"
	"time"

	"airfoil-lab-service/internal/domain"
)

// ErrDuplicate marks inserts that collide with an existing unique value.
// Implementations wrap it so callers can classify with errors.Is.
var ErrDuplicate = errors.New("duplicate record")

// Port: a boundary for storing and retrieving learner accounts.
type UserRepository interface {
	// Insert a new user and return it with its assigned ID. Returns an
	// error wrapping ErrDuplicate when the username or email is taken.
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	// Look up a user by username. Returns nil when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// Look up a user by ID. Returns nil when no such user exists.
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	// Record the time of a successful login.
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}
