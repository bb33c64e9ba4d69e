package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/ports"
)

func TestSessionStores(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	stores := map[string]ports.SessionStore{
		"memory": NewMemorySessionStore(),
		"redis":  NewRedisSessionStore(rdb, time.Hour),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if state, err := store.Load(ctx, "missing"); err != nil || state != nil {
				t.Fatalf("load missing session: state=%v err=%v", state, err)
			}

			want := &domain.AgentState{
				Airfoil: &domain.AgentAirfoil{
					Designation: "naca2412",
					Coordinates: [][]float64{{1, 0.001}, {0, 0}, {1, -0.001}},
				},
				History: []domain.AgentRun{{
					Condition: "cruise", Alpha: 4, Reynolds: 2e6,
					CL: 0.7, CD: 0.01, LD: 70,
					StallRisk: "low", Efficiency: "good",
				}},
			}
			if err := store.Save(ctx, "s1", want); err != nil {
				t.Fatalf("save: %v", err)
			}

			got, err := store.Load(ctx, "s1")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got == nil {
				t.Fatal("expected saved state")
			}
			if got.Airfoil == nil || got.Airfoil.Designation != "naca2412" {
				t.Errorf("got airfoil %+v, want naca2412", got.Airfoil)
			}
			if len(got.Airfoil.Coordinates) != 3 {
				t.Errorf("got %d coordinate rows, want 3", len(got.Airfoil.Coordinates))
			}
			if len(got.History) != 1 || got.History[0].Condition != "cruise" {
				t.Errorf("got history %+v, want one cruise run", got.History)
			}

			n, err := store.Count(ctx)
			if err != nil {
				t.Fatalf("count: %v", err)
			}
			if n != 1 {
				t.Errorf("got %d sessions, want 1", n)
			}

			if err := store.Delete(ctx, "s1"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if state, _ := store.Load(ctx, "s1"); state != nil {
				t.Error("expected session gone after delete")
			}
			if err := store.Delete(ctx, "s1"); err != nil {
				t.Errorf("delete of absent session: %v", err)
			}
		})
	}
}

func TestRedisSessionExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisSessionStore(rdb, time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, "s1", &domain.AgentState{}); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if state, err := store.Load(ctx, "s1"); err != nil || state != nil {
		t.Fatalf("expected expired session to miss: state=%v err=%v", state, err)
	}
}

func TestMemorySessionIsolation(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	if err := store.Save(ctx, "s1", &domain.AgentState{
		History: []domain.AgentRun{{Condition: "cruise"}},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got.History = append(got.History, domain.AgentRun{Condition: "takeoff"})

	again, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(again.History) != 1 {
		t.Errorf("stored state mutated through loaded copy: %d runs", len(again.History))
	}
}
