package ports

import (
	"context"

	"airfoil-lab-service/internal/domain"
)

// Contract for a conversational language model backend.
type ChatModel interface {
	// Return the model's reply to a conversation, given a system prompt
	// and the prior transcript ending with the user's latest message.
	Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error)
	// Name of the underlying provider, for logging and health reporting.
	Name() string
}
