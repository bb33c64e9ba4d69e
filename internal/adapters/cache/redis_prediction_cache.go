package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/platform/obs"
)

const predictionKeyPrefix = "nf:pred:"

// RedisPredictionCache stores predictor results in Redis as JSON values
// with a fixed TTL. Safe for concurrent use.
type RedisPredictionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPredictionCache(rdb *redis.Client, ttl time.Duration) *RedisPredictionCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisPredictionCache{rdb: rdb, ttl: ttl}
}

// Look up a cached result. The second return reports whether the key was
// present.
func (c *RedisPredictionCache) Get(ctx context.Context, key string) (_ domain.AeroResult, _ bool, err error) {
	defer obs.Time(ctx, "prediction.cache.Get")(&err)

	if c.rdb == nil {
		return domain.AeroResult{}, false, errors.New("prediction cache: redis client is nil")
	}

	raw, rerr := c.rdb.Get(ctx, predictionKeyPrefix+key).Bytes()
	if errors.Is(rerr, redis.Nil) {
		return domain.AeroResult{}, false, nil
	}
	if rerr != nil {
		return domain.AeroResult{}, false, fmt.Errorf("get prediction cache: %w", rerr)
	}

	var res domain.AeroResult
	if uerr := json.Unmarshal(raw, &res); uerr != nil {
		return domain.AeroResult{}, false, fmt.Errorf("decode cached prediction: %w", uerr)
	}

	return res, true, nil
}

// Store a result under key.
func (c *RedisPredictionCache) Put(ctx context.Context, key string, res domain.AeroResult) (err error) {
	defer obs.Time(ctx, "prediction.cache.Put")(&err)

	if c.rdb == nil {
		return errors.New("prediction cache: redis client is nil")
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode prediction: %w", err)
	}

	if serr := c.rdb.Set(ctx, predictionKeyPrefix+key, payload, c.ttl).Err(); serr != nil {
		return fmt.Errorf("put prediction cache: %w", serr)
	}

	return nil
}
