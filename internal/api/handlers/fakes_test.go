package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/ports"
)

// fakePredictor returns a scripted result and records every condition it
// was asked about. Polar sweeps predict concurrently, so access is
// locked.
type fakePredictor struct {
	res domain.AeroResult
	err error

	mu    sync.Mutex
	conds []domain.FlightCondition
}

func (p *fakePredictor) Predict(_ context.Context, _ airfoil.Coordinates, cond domain.FlightCondition) (domain.AeroResult, error) {
	p.mu.Lock()
	p.conds = append(p.conds, cond)
	p.mu.Unlock()
	if p.err != nil {
		return domain.AeroResult{}, p.err
	}
	return p.res, nil
}

func (p *fakePredictor) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.conds)
}

func goodResult() domain.AeroResult {
	return domain.AeroResult{
		CL:        0.82,
		CD:        0.011,
		CM:        -0.05,
		LD:        74.5,
		Converged: true,
		TimeMS:    3.2,
		Solver:    "neuralfoil",
	}
}

type fakeSimRepo struct {
	rows   []*domain.Simulation
	nextID int64
}

func (r *fakeSimRepo) InsertSimulation(_ context.Context, s *domain.Simulation) (*domain.Simulation, error) {
	r.nextID++
	c := *s
	c.ID = r.nextID
	c.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.rows = append(r.rows, &c)
	return &c, nil
}

func (r *fakeSimRepo) GetSimulation(_ context.Context, id int64) (*domain.Simulation, error) {
	for _, s := range r.rows {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSimRepo) ListSimulations(_ context.Context, userID *int64, limit int) ([]*domain.Simulation, error) {
	var out []*domain.Simulation
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		s := r.rows[i]
		if userID != nil && (s.UserID == nil || *s.UserID != *userID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeUserRepo struct {
	users  []*domain.User
	nextID int64
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, have := range r.users {
		if have.Username == u.Username || have.Email == u.Email {
			return nil, fmt.Errorf("create user: %w", ports.ErrDuplicate)
		}
	}
	r.nextID++
	c := *u
	c.ID = r.nextID
	c.CreatedAt = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	r.users = append(r.users, &c)
	return &c, nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	for _, u := range r.users {
		if u.ID == id {
			t := at
			u.LastLogin = &t
		}
	}
	return nil
}

type fakeChallengeRepo struct {
	challenges []*domain.Challenge
	subs       []*domain.ChallengeSubmission
	nextSubID  int64
}

func (r *fakeChallengeRepo) ListChallenges(_ context.Context) ([]*domain.Challenge, error) {
	return r.challenges, nil
}

func (r *fakeChallengeRepo) GetChallengeBySlug(_ context.Context, slug string) (*domain.Challenge, error) {
	for _, c := range r.challenges {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeChallengeRepo) RandomChallenge(_ context.Context, difficulty string) (*domain.Challenge, error) {
	for _, c := range r.challenges {
		if difficulty == "" || c.Difficulty == difficulty {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeChallengeRepo) UpsertChallenge(_ context.Context, c *domain.Challenge) error {
	r.challenges = append(r.challenges, c)
	return nil
}

func (r *fakeChallengeRepo) InsertSubmission(_ context.Context, sub *domain.ChallengeSubmission) (*domain.ChallengeSubmission, error) {
	r.nextSubID++
	c := *sub
	c.ID = r.nextSubID
	r.subs = append(r.subs, &c)
	return &c, nil
}

func (r *fakeChallengeRepo) ListSubmissions(_ context.Context, userID int64) ([]*domain.ChallengeSubmission, error) {
	var out []*domain.ChallengeSubmission
	for i := len(r.subs) - 1; i >= 0; i-- {
		s := r.subs[i]
		if s.UserID != nil && *s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeChallengeRepo) TotalPoints(_ context.Context, userID int64) (int, error) {
	total := 0
	for _, s := range r.subs {
		if s.UserID != nil && *s.UserID == userID && s.Passed {
			total += s.PointsAwarded
		}
	}
	return total, nil
}

type fakeChatRepo struct {
	msgs   []*domain.ChatMessage
	nextID int64
}

func (r *fakeChatRepo) InsertMessage(_ context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	r.nextID++
	c := *m
	c.ID = r.nextID
	c.CreatedAt = time.Date(2025, 6, 1, 10, 0, 0, int(r.nextID), time.UTC)
	r.msgs = append(r.msgs, &c)
	return &c, nil
}

func (r *fakeChatRepo) ListMessages(_ context.Context, sessionID string, limit int) ([]*domain.ChatMessage, error) {
	var out []*domain.ChatMessage
	for _, m := range r.msgs {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type fakeChatModel struct {
	reply string
	err   error
}

func (m *fakeChatModel) Complete(_ context.Context, _ string, _ []domain.ChatMessage) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *fakeChatModel) Name() string { return "scripted" }
