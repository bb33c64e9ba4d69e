package dto

// AirfoilSelector is the airfoil description shared by the simulation
// endpoints: exactly one of the naca / preset / custom conventions.
type AirfoilSelector struct {
	AirfoilType     string      `json:"airfoil_type"`
	NACADesignation string      `json:"naca_designation,omitempty"`
	PresetName      string      `json:"preset_name,omitempty"`
	Camber          *float64    `json:"camber,omitempty"`
	Thickness       *float64    `json:"thickness,omitempty"`
	Coordinates     [][]float64 `json:"coordinates,omitempty"`
	Points          int         `json:"points,omitempty"`
}

type RunSimulationRequest struct {
	AirfoilSelector
	Alpha    *float64 `json:"alpha"`
	Reynolds *float64 `json:"reynolds"`
	Mach     float64  `json:"mach"`
}

// Coefficient keys are uppercase on the wire; the frontend charts read
// them as column names.
type AeroResultResponse struct {
	CL        float64 `json:"CL"`
	CD        float64 `json:"CD"`
	CM        float64 `json:"CM"`
	LD        float64 `json:"L_D"`
	Converged bool    `json:"converged"`
	TimeMS    float64 `json:"time_ms"`
	Solver    string  `json:"solver"`
}

type PropertiesResponse struct {
	MaxThickness         float64 `json:"max_thickness"`
	MaxThicknessLocation float64 `json:"max_thickness_location"`
	TrailingEdgeGap      float64 `json:"trailing_edge_gap"`
	Chord                float64 `json:"chord"`
}

type RunSimulationResponse struct {
	AeroResultResponse
	Coordinates [][]float64        `json:"coordinates"`
	Properties  PropertiesResponse `json:"properties"`
}

// Polar requests name the airfoil without raw coordinates; sweeps are for
// generated sections.
type PolarRequest struct {
	AirfoilType     string   `json:"airfoil_type"`
	NACADesignation string   `json:"naca_designation,omitempty"`
	PresetName      string   `json:"preset_name,omitempty"`
	Camber          *float64 `json:"camber,omitempty"`
	Thickness       *float64 `json:"thickness,omitempty"`
	Points          int      `json:"points,omitempty"`
	AlphaMin        *float64 `json:"alpha_min"`
	AlphaMax        *float64 `json:"alpha_max"`
	AlphaStep       *float64 `json:"alpha_step"`
	Reynolds        *float64 `json:"reynolds"`
}

type PolarPointResponse struct {
	Alpha     float64 `json:"alpha"`
	CL        float64 `json:"CL"`
	CD        float64 `json:"CD"`
	CM        float64 `json:"CM"`
	LD        float64 `json:"L_D"`
	Converged bool    `json:"converged"`
	TimeMS    float64 `json:"time_ms"`
	Solver    string  `json:"solver"`
	Error     string  `json:"error,omitempty"`
}

type PolarResponse struct {
	PolarData   []PolarPointResponse `json:"polar_data"`
	Coordinates [][]float64          `json:"coordinates"`
}

type OptimizeRequest struct {
	AirfoilSelector
	Alpha      *float64 `json:"alpha"`
	Reynolds   *float64 `json:"reynolds"`
	Iterations int      `json:"n_iterations"`
}

type OptimizeResponse struct {
	Before               AeroResultResponse `json:"before"`
	After                AeroResultResponse `json:"after"`
	ImprovementPercent   float64            `json:"improvement_percent"`
	OptimizedCoordinates [][]float64        `json:"optimized_coordinates"`
}

type PresetsResponse struct {
	Presets  []string          `json:"presets"`
	Examples map[string]string `json:"examples"`
}

type SimulationRecord struct {
	ID           int64    `json:"id"`
	AirfoilType  string   `json:"airfoil_type"`
	Designation  string   `json:"designation"`
	Camber       *float64 `json:"camber,omitempty"`
	Thickness    *float64 `json:"thickness,omitempty"`
	Alpha        float64  `json:"alpha"`
	Reynolds     float64  `json:"reynolds"`
	Mach         float64  `json:"mach"`
	Solver       string   `json:"solver"`
	Status       string   `json:"status"`
	CL           float64  `json:"CL"`
	CD           float64  `json:"CD"`
	LD           float64  `json:"L_D"`
	Converged    bool     `json:"converged"`
	TimeMS       float64  `json:"time_ms"`
	ErrorMessage string   `json:"error_message,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

type RecentSimulationsResponse struct {
	Simulations []SimulationRecord `json:"simulations"`
}

type SimulationHealthResponse struct {
	Status        string  `json:"status"`
	Solver        string  `json:"solver"`
	Version       string  `json:"version"`
	TestLatencyMS float64 `json:"test_latency_ms"`
}
