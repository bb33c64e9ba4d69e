package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"airfoil-lab-service/internal/api/dto"
)

const (
	appName    = "AirfoilLearner"
	appVersion = "0.1.0"
)

// HealthHandler answers the liveness endpoints. Dependency pings are
// injected as functions so the handler stays unaware of concrete drivers.
type HealthHandler struct {
	Env        string
	AIProvider string
	// Predictor is the solver name shown when its ping succeeds.
	Predictor string
	PingDB    func(context.Context) error
	// Nil when Redis is not configured.
	PingRedis func(context.Context) error
	// Nil skips the predictor probe.
	PingPredictor func(context.Context) error
}

// Root announces the service. Cheap enough for load balancer probes.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RootResponse{
		App:     appName,
		Version: appVersion,
		Status:  "running",
		Env:     h.Env,
	})
}

// Health pings each dependency. The response is 200 even when degraded;
// the body says what is down.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	res := dto.HealthResponse{
		Status:     "healthy",
		Database:   "connected",
		Redis:      "not configured",
		AIProvider: h.AIProvider,
		Predictor:  h.Predictor,
	}

	if err := h.PingDB(ctx); err != nil {
		log.Printf("health: database ping failed: %v", err)
		res.Status = "degraded"
		res.Database = "unavailable"
	}
	if h.PingRedis != nil {
		res.Redis = "connected"
		if err := h.PingRedis(ctx); err != nil {
			log.Printf("health: redis ping failed: %v", err)
			res.Status = "degraded"
			res.Redis = "unavailable"
		}
	}
	if h.PingPredictor != nil {
		if err := h.PingPredictor(ctx); err != nil {
			log.Printf("health: predictor ping failed: %v", err)
			res.Status = "degraded"
			res.Predictor = "unavailable"
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
