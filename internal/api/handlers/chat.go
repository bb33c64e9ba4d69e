package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/api/dto"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/ports"
	"airfoil-lab-service/internal/services"
)

type ChatHandler struct {
	Model     ports.ChatModel
	Predictor ports.AeroPredictor
	SimRepo   ports.SimulationRepository
	ChatRepo  ports.ChatRepository
}

// Message runs one tutor exchange. Replies always come back 200: the
// tutor degrades to a canned answer rather than failing the conversation.
func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ChatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, r, http.StatusBadRequest, "message is required")
		return
	}

	svcReq := services.TutorRequest{
		SessionID: req.SessionID,
		Message:   req.Message,
		UserID:    userIDPtr(r),
	}
	for _, m := range req.ConversationHistory {
		svcReq.History = append(svcReq.History, domain.ChatMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	if req.CurrentResults != nil {
		svcReq.CurrentResults = &domain.AeroResult{
			CL: req.CurrentResults.CL,
			CD: req.CurrentResults.CD,
			LD: req.CurrentResults.LD,
		}
	}

	out := services.TutorRespond(r.Context(), svcReq, h.Model, h.Predictor, h.SimRepo, h.ChatRepo)

	res := dto.ChatResponse{
		Response:            out.Response,
		SimulationTriggered: out.SimulationTriggered,
	}
	if out.Extracted != nil {
		res.ExtractedParams = out.Extracted
	}
	if out.SimulationResult != nil {
		mapped := aeroResultDTO(*out.SimulationResult)
		res.SimulationResults = &mapped
	}

	writeJSON(w, r, http.StatusOK, res)
}

// History replays a stored session transcript in chronological order.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, r, http.StatusBadRequest, "session_id is required")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	messages, err := h.ChatRepo.ListMessages(r.Context(), sessionID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ChatHistoryResponse{
		SessionID: sessionID,
		Messages:  make([]dto.ChatHistoryMessage, 0, len(messages)),
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, dto.ChatHistoryMessage{
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Guidance describes the accepted parameter space for the chat UI's help
// panel.
func (h *ChatHandler) Guidance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, guidance())
}

func guidance() dto.GuidanceResponse {
	return dto.GuidanceResponse{
		AirfoilTypes: map[string]dto.GuidanceAirfoilType{
			"naca": {
				Description: "NACA 4-digit series",
				Format:      "MPXX (M=camber %, P=camber position /10, XX=thickness %)",
				Examples:    []string{"0012", "2412", "4412", "0015"},
			},
			"preset": {
				Description: "Pre-configured airfoils",
				Options:     airfoil.PresetNames(),
				Examples: map[string]string{
					"naca0012":  "Symmetric, 12% thick",
					"high_lift": "High camber for maximum lift",
					"low_drag":  "Thin profile for efficiency",
				},
			},
			"custom": {
				Description: "Custom airfoil design",
				Parameters: map[string]string{
					"camber":    "0.0-0.15 (typical: 0.02-0.08)",
					"thickness": "0.05-0.25 (typical: 0.10-0.18)",
				},
			},
		},
		FlowParameters: map[string]dto.GuidanceFlowParameter{
			"alpha": {
				Name:        "Angle of attack",
				Range:       "-20° to 30°",
				Typical:     "0° to 15°",
				Description: "Angle between airfoil chord and freestream",
			},
			"reynolds": {
				Name:        "Reynolds number",
				Range:       "10,000 to 10,000,000",
				Typical:     "1,000,000",
				Description: "Ratio of inertial to viscous forces",
			},
		},
		Tips: []string{
			"Start with alpha=5° and Re=1,000,000 for general airfoils",
			"Symmetric airfoils (NACA 0012) have zero lift at alpha=0°",
			"Higher camber increases lift but also drag",
			"Thicker airfoils are stronger but have more drag",
			"L/D ratio above 50 is excellent for low-speed flight",
		},
	}
}
