package dto

type RootResponse struct {
	App     string `json:"app"`
	Version string `json:"version"`
	Status  string `json:"status"`
	Env     string `json:"env"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Database   string `json:"database"`
	Redis      string `json:"redis"`
	AIProvider string `json:"ai_provider"`
	Predictor  string `json:"predictor"`
}
