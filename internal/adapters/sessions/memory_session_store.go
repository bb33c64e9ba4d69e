package sessions

import (
	"context"
	"sync"

	"airfoil-lab-service/internal/domain"
)

// MemorySessionStore is the in-process fallback used when Redis is not
// configured. State is lost on restart. Safe for concurrent use.
type MemorySessionStore struct {
	mu     sync.RWMutex
	states map[string]*domain.AgentState
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{states: make(map[string]*domain.AgentState)}
}

func (s *MemorySessionStore) Load(ctx context.Context, sessionID string) (*domain.AgentState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[sessionID]
	if !ok {
		return nil, nil
	}
	return copyState(state), nil
}

func (s *MemorySessionStore) Save(ctx context.Context, sessionID string, state *domain.AgentState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[sessionID] = copyState(state)
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, sessionID)
	return nil
}

func (s *MemorySessionStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.states), nil
}

// copyState clones the containers so concurrent commands cannot race on a
// shared History slice. Coordinate rows are treated as immutable.
func copyState(state *domain.AgentState) *domain.AgentState {
	if state == nil {
		return nil
	}

	cp := &domain.AgentState{}
	if state.Airfoil != nil {
		a := *state.Airfoil
		cp.Airfoil = &a
	}
	if state.History != nil {
		cp.History = append([]domain.AgentRun(nil), state.History...)
	}
	return cp
}
