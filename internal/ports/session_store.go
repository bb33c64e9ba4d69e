package ports

import (
	"context"

	"airfoil-lab-service/internal/domain"
)

// Port: a boundary for interactive agent session state.
type SessionStore interface {
	// Load the state for a session. Returns nil when the session does not
	// exist or has expired.
	Load(ctx context.Context, sessionID string) (*domain.AgentState, error)
	// Save the state for a session, resetting its expiry.
	Save(ctx context.Context, sessionID string, state *domain.AgentState) error
	// Delete a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error
	// Return the number of live sessions.
	Count(ctx context.Context) (int, error)
}
