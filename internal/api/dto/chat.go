package dto

// Coefficients of the run the user is currently looking at, echoed back
// into the tutor's context block.
type CurrentResults struct {
	CL float64 `json:"CL"`
	CD float64 `json:"CD"`
	LD float64 `json:"L_D"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string          `json:"message"`
	SessionID           string          `json:"session_id,omitempty"`
	CurrentResults      *CurrentResults `json:"current_results,omitempty"`
	ConversationHistory []ChatMessage   `json:"conversation_history,omitempty"`
}

type ChatResponse struct {
	Response            string              `json:"response"`
	ExtractedParams     any                 `json:"extracted_params"`
	SimulationTriggered bool                `json:"simulation_triggered"`
	SimulationResults   *AeroResultResponse `json:"simulation_results"`
}

type ChatHistoryMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type ChatHistoryResponse struct {
	SessionID string               `json:"session_id"`
	Messages  []ChatHistoryMessage `json:"messages"`
}

type GuidanceAirfoilType struct {
	Description string            `json:"description"`
	Format      string            `json:"format,omitempty"`
	Options     []string          `json:"options,omitempty"`
	Examples    any               `json:"examples,omitempty"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

type GuidanceFlowParameter struct {
	Name        string `json:"name"`
	Range       string `json:"range"`
	Typical     string `json:"typical"`
	Description string `json:"description"`
}

type GuidanceResponse struct {
	AirfoilTypes   map[string]GuidanceAirfoilType   `json:"airfoil_types"`
	FlowParameters map[string]GuidanceFlowParameter `json:"flow_parameters"`
	Tips           []string                         `json:"tips"`
}
