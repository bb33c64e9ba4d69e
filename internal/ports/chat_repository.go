package ports

import (
	"context"

	"airfoil-lab-service/internal/domain"
)

// Port: a boundary for the tutor conversation log.
type ChatRepository interface {
	// Append one message to a session transcript.
	InsertMessage(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error)
	// Return the most recent messages of a session in chronological order.
	ListMessages(ctx context.Context, sessionID string, limit int) ([]*domain.ChatMessage, error)
}
