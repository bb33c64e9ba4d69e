package ports

import (
	"context"

	"airfoil-lab-service/internal/domain"
)

// Port: a boundary for the challenge catalog and scored submissions.
type ChallengeRepository interface {
	// Return all active challenges ordered by difficulty and sort order.
	ListChallenges(ctx context.Context) ([]*domain.Challenge, error)
	// Look up a challenge by slug. Returns nil when no such challenge exists.
	GetChallengeBySlug(ctx context.Context, slug string) (*domain.Challenge, error)
	// Return one random active challenge, optionally filtered by difficulty.
	RandomChallenge(ctx context.Context, difficulty string) (*domain.Challenge, error)
	// Insert or update a challenge keyed by slug. Used by the seeder.
	UpsertChallenge(ctx context.Context, c *domain.Challenge) error
	// Insert a scored attempt and return it with its assigned ID.
	InsertSubmission(ctx context.Context, sub *domain.ChallengeSubmission) (*domain.ChallengeSubmission, error)
	// Return a user's attempts, newest first.
	ListSubmissions(ctx context.Context, userID int64) ([]*domain.ChallengeSubmission, error)
	// Return the sum of points a user earned across passed attempts.
	TotalPoints(ctx context.Context, userID int64) (int, error)
}
