package domain

// The airfoil a command session is currently working on. Coordinates are
// kept in wire form so the state serializes straight into the session
// store.
type AgentAirfoil struct {
	Designation string      `json:"designation"`
	Coordinates [][]float64 `json:"coordinates"`
}

// One simulation the agent ran for a session, with the derived pedagogy
// metrics alongside the raw coefficients.
type AgentRun struct {
	Condition  string  `json:"condition"`
	Alpha      float64 `json:"alpha"`
	Reynolds   float64 `json:"reynolds"`
	CL         float64 `json:"cl"`
	CD         float64 `json:"cd"`
	LD         float64 `json:"l_d"`
	StallRisk  string  `json:"stall_risk"`
	Efficiency string  `json:"efficiency_rating"`
}

// Per-session agent state: the working airfoil and everything tested so
// far.
type AgentState struct {
	Airfoil *AgentAirfoil `json:"airfoil,omitempty"`
	History []AgentRun    `json:"history,omitempty"`
}
