package dto

type ChallengeSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

type ListChallengesResponse struct {
	Challenges []ChallengeSummary `json:"challenges"`
}

type ChallengeDetail struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Difficulty  string   `json:"difficulty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description"`
	Constraints any      `json:"constraints"`
	Hints       []string `json:"hints"`
	Points      int      `json:"points"`
}

type GetChallengeResponse struct {
	Challenge ChallengeDetail `json:"challenge"`
	Message   string          `json:"message"`
}

// Coefficients are client-reported: the learner runs the simulation first
// and submits the numbers it produced.
type SubmissionRequest struct {
	ChallengeID     string  `json:"challenge_id"`
	NACADesignation string  `json:"naca_designation"`
	Alpha           float64 `json:"alpha"`
	Reynolds        float64 `json:"reynolds"`
	CL              float64 `json:"cl"`
	CD              float64 `json:"cd"`
	LD              float64 `json:"ld"`
}

type SubmissionResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Points   int    `json:"points"`
	Feedback string `json:"feedback"`
}
