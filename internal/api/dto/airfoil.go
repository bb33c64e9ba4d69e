package dto

type GenerateAirfoilRequest struct {
	AirfoilSelector
}

type GenerateAirfoilResponse struct {
	Designation string              `json:"designation"`
	Coordinates [][]float64         `json:"coordinates"`
	Properties  *PropertiesResponse `json:"properties,omitempty"`
}

type UploadAirfoilResponse struct {
	Name        string              `json:"name"`
	Coordinates [][]float64         `json:"coordinates"`
	Properties  *PropertiesResponse `json:"properties,omitempty"`
}
