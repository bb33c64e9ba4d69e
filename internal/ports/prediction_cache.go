package ports

import (
	"context"

	"airfoil-lab-service/internal/domain"
)

// Port: a boundary for caching predictor results keyed by airfoil geometry
// and flight condition.
type PredictionCache interface {
	// Look up a cached result. The second return reports whether the key
	// was present.
	Get(ctx context.Context, key string) (domain.AeroResult, bool, error)
	// Store a result under key.
	Put(ctx context.Context, key string, res domain.AeroResult) error
}
