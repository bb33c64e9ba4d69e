package domain

import "time"

// Threshold constraints a challenge submission is checked against. Nil
// fields are unconstrained; pointer fields make "absent" distinct from
// zero, matching the sparse constraint sets of the built-in challenges.
type ChallengeConstraints struct {
	Alpha               *float64 `json:"alpha,omitempty"`
	AlphaMin            *float64 `json:"alpha_min,omitempty"`
	AlphaMax            *float64 `json:"alpha_max,omitempty"`
	Reynolds            *float64 `json:"reynolds,omitempty"`
	TargetCLMin         *float64 `json:"target_cl_min,omitempty"`
	TargetCLMax         *float64 `json:"target_cl_max,omitempty"`
	TargetCDMax         *float64 `json:"target_cd_max,omitempty"`
	TargetLDMin         *float64 `json:"target_ld_min,omitempty"`
	RequiredDesignation string   `json:"naca,omitempty"`
}

// A design challenge: a described goal with numeric acceptance thresholds
// and a point reward.
type Challenge struct {
	ID          int64
	Slug        string
	Title       string
	Difficulty  string
	Category    string
	Description string
	Constraints ChallengeConstraints
	Hints       []string
	Points      int
	SortOrder   int
	Active      bool
	CreatedAt   time.Time
}

// Represents one scored attempt at a challenge.
type ChallengeSubmission struct {
	ID            int64
	ChallengeID   int64
	UserID        *int64
	Designation   string
	Alpha         float64
	Reynolds      float64
	CL            float64
	CD            float64
	LD            float64
	Passed        bool
	PointsAwarded int
	Feedback      string
	CreatedAt     time.Time
}
