package domain

import "time"

// Chat message roles as stored and replayed to the tutor model.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// One side of a tutor exchange, keyed by the client-chosen session id.
type ChatMessage struct {
	ID        int64
	SessionID string
	UserID    *int64
	Role      string
	Content   string
	CreatedAt time.Time
}
