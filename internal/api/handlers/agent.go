package handlers

import (
	"net/http"
	"strings"

	"airfoil-lab-service/internal/api/dto"
	"airfoil-lab-service/internal/ports"
	"airfoil-lab-service/internal/services"
)

type AgentHandler struct {
	Store     ports.SessionStore
	Predictor ports.AeroPredictor
}

// Command interprets one natural-language command against the caller's
// session. Unparseable commands come back 400 with the agent's message.
func (h *AgentHandler) Command(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.AgentCommandRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	out, err := services.AgentCommand(r.Context(), sessionID, req.Command, h.Store, h.Predictor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.AgentCommandResponse{
		Action:  out.Action,
		Success: true,
		Message: out.Message,
	}
	if out.Airfoil != nil {
		res.Airfoil = &dto.AgentAirfoil{
			Coordinates: out.Airfoil.Coordinates,
			Type:        airfoilTypeFromLabel(out.Airfoil.Designation),
			Designation: out.Airfoil.Designation,
		}
	}
	for _, run := range out.Results {
		res.Results = append(res.Results, dto.AgentRunResult{
			Condition: run.Condition,
			Alpha:     run.Alpha,
			Reynolds:  run.Reynolds,
			Metrics: dto.AgentMetrics{
				CL:               run.Result.CL,
				CD:               run.Result.CD,
				CM:               run.Result.CM,
				LD:               run.Result.LD,
				StallRisk:        run.StallRisk,
				EfficiencyRating: run.Efficiency,
			},
			TimeMS: run.Result.TimeMS,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Current returns the session's working airfoil coordinates.
func (h *AgentHandler) Current(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = "default"
	}

	state, err := h.Store.Load(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if state == nil || state.Airfoil == nil {
		writeError(w, r, http.StatusNotFound, "No airfoil generated")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AgentCurrentResponse{
		Coordinates: state.Airfoil.Coordinates,
	})
}

// Health reports the session store's live session count.
func (h *AgentHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	count, err := h.Store.Count(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AgentHealthResponse{
		Status:   "healthy",
		Sessions: count,
	})
}

// Generated sections are labelled either "NACA XXXX" or with a preset
// name.
func airfoilTypeFromLabel(label string) string {
	if strings.HasPrefix(label, "NACA ") {
		return "naca"
	}
	return "preset"
}
