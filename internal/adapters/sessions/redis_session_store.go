package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"airfoil-lab-service/internal/domain"
)

const sessionKeyPrefix = "agent:sess:"

// RedisSessionStore keeps agent session state in Redis so sessions survive
// restarts and can be shared across replicas. Sessions expire after the
// configured TTL of inactivity.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

// Load the state for a session. Returns nil when the session does not
// exist or has expired.
func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*domain.AgentState, error) {
	raw, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", sessionID, err)
	}

	var state domain.AgentState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode session %q: %w", sessionID, err)
	}

	return &state, nil
}

// Save the state for a session, resetting its expiry.
func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, state *domain.AgentState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %q: %w", sessionID, err)
	}

	if err := s.rdb.Set(ctx, sessionKeyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %q: %w", sessionID, err)
	}

	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session %q: %w", sessionID, err)
	}
	return nil
}

// Count returns the number of live sessions. SCAN-based, so the figure is
// approximate under concurrent writes.
func (s *RedisSessionStore) Count(ctx context.Context) (int, error) {
	var cursor uint64
	count := 0

	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, sessionKeyPrefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("scan sessions: %w", err)
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}
