package dto

type AgentCommandRequest struct {
	Command   string `json:"command"`
	SessionID string `json:"session_id"`
}

type AgentAirfoil struct {
	Coordinates [][]float64 `json:"coordinates"`
	Type        string      `json:"type"`
	Designation string      `json:"designation"`
}

type AgentMetrics struct {
	CL               float64 `json:"CL"`
	CD               float64 `json:"CD"`
	CM               float64 `json:"CM"`
	LD               float64 `json:"L_D"`
	StallRisk        string  `json:"stall_risk"`
	EfficiencyRating string  `json:"efficiency_rating"`
}

type AgentRunResult struct {
	Condition string       `json:"condition"`
	Alpha     float64      `json:"alpha"`
	Reynolds  float64      `json:"reynolds"`
	Metrics   AgentMetrics `json:"metrics"`
	TimeMS    float64      `json:"time_ms"`
}

// One of Airfoil (generate) or Results (simulate) is set, matching Action.
type AgentCommandResponse struct {
	Action  string           `json:"action"`
	Success bool             `json:"success"`
	Airfoil *AgentAirfoil    `json:"airfoil,omitempty"`
	Results []AgentRunResult `json:"results,omitempty"`
	Message string           `json:"message"`
}

type AgentCurrentResponse struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type AgentHealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}
