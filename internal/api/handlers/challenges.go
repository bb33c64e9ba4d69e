package handlers

import (
	"fmt"
	"net/http"

	"airfoil-lab-service/internal/api/dto"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/ports"
	"airfoil-lab-service/internal/services"

	"github.com/gorilla/mux"
)

type ChallengeHandler struct {
	Repo ports.ChallengeRepository
}

func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	challenges, err := h.Repo.ListChallenges(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListChallengesResponse{
		Challenges: make([]dto.ChallengeSummary, 0, len(challenges)),
	}
	for _, c := range challenges {
		res.Challenges = append(res.Challenges, dto.ChallengeSummary{
			ID:          c.Slug,
			Title:       c.Title,
			Difficulty:  c.Difficulty,
			Description: c.Description,
			Points:      c.Points,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	slug := mux.Vars(r)["slug"]

	challenge, err := h.Repo.GetChallengeBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if challenge == nil {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("Challenge '%s' not found", slug))
		return
	}

	writeJSON(w, r, http.StatusOK, challengeResponse(challenge))
}

// Random picks one challenge, optionally narrowed to a difficulty tier.
func (h *ChallengeHandler) Random(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	difficulty := r.URL.Query().Get("difficulty")
	switch difficulty {
	case "", "easy", "medium", "hard":
	default:
		writeError(w, r, http.StatusBadRequest, "difficulty must be easy, medium, or hard")
		return
	}

	challenge, err := h.Repo.RandomChallenge(r.Context(), difficulty)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if challenge == nil {
		writeError(w, r, http.StatusNotFound, "No challenges found")
		return
	}

	writeJSON(w, r, http.StatusOK, challengeResponse(challenge))
}

func (h *ChallengeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SubmissionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.ChallengeID == "" {
		writeError(w, r, http.StatusBadRequest, "challenge_id is required")
		return
	}

	out, err := services.EvaluateChallenge(r.Context(), services.SubmissionInput{
		ChallengeSlug: req.ChallengeID,
		Designation:   req.NACADesignation,
		Alpha:         req.Alpha,
		Reynolds:      req.Reynolds,
		CL:            req.CL,
		CD:            req.CD,
		LD:            req.LD,
		UserID:        userIDPtr(r),
	}, h.Repo)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SubmissionResponse{
		Success:  out.Passed,
		Message:  out.Message,
		Points:   out.Points,
		Feedback: out.Feedback,
	})
}

func challengeResponse(c *domain.Challenge) dto.GetChallengeResponse {
	return dto.GetChallengeResponse{
		Challenge: dto.ChallengeDetail{
			ID:          c.Slug,
			Title:       c.Title,
			Difficulty:  c.Difficulty,
			Category:    c.Category,
			Description: c.Description,
			Constraints: c.Constraints,
			Hints:       c.Hints,
			Points:      c.Points,
		},
		Message: fmt.Sprintf("Challenge: %s (%s)\n\n%s", c.Title, c.Difficulty, c.Description),
	}
}
