package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/api/dto"
	"airfoil-lab-service/internal/plots"
	"airfoil-lab-service/internal/services"
)

const defaultMaxUploadBytes = 10 << 20

// AirfoilHandler serves the pure-geometry endpoints: no predictor, no
// storage, just section math.
type AirfoilHandler struct {
	// Upload size cap in bytes; defaultMaxUploadBytes when zero.
	MaxUploadBytes int64
}

// Generate builds surface coordinates for a described airfoil.
func (h *AirfoilHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.GenerateAirfoilRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resolved, err := services.ResolveAirfoil(selectorFromDTO(req.AirfoilSelector))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.GenerateAirfoilResponse{
		Designation: airfoilLabel(resolved),
		Coordinates: resolved.Coordinates.Pairs(),
	}
	if props, err := airfoil.ComputeProperties(resolved.Coordinates); err == nil {
		mapped := propertiesDTO(props)
		res.Properties = &mapped
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Upload accepts a coordinate .dat file (Selig or Lednicer layout) as the
// multipart field "file" and returns the normalized section.
func (h *AirfoilHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	maxBytes := h.MaxUploadBytes
	if maxBytes == 0 {
		maxBytes = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "multipart form with a 'file' field is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "multipart form with a 'file' field is required")
		return
	}
	defer file.Close()

	name, coords, err := airfoil.ParseDatFile(file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if name == "" {
		name = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}

	coords, err = airfoil.Normalize(coords)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.UploadAirfoilResponse{
		Name:        name,
		Coordinates: coords.Pairs(),
	}
	if props, err := airfoil.ComputeProperties(coords); err == nil {
		mapped := propertiesDTO(props)
		res.Properties = &mapped
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Plot renders the described airfoil as a PNG.
func (h *AirfoilHandler) Plot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.GenerateAirfoilRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resolved, err := services.ResolveAirfoil(selectorFromDTO(req.AirfoilSelector))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	png, err := plots.AirfoilPNG(resolved.Coordinates, airfoilLabel(resolved))
	if err != nil {
		log.Printf("plot airfoil failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Printf("write png failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

// airfoilLabel is the display name for a resolved section: "NACA 2412"
// for designations, the preset or custom tag otherwise.
func airfoilLabel(resolved services.ResolvedAirfoil) string {
	if resolved.Type == "naca" {
		return "NACA " + resolved.Designation
	}
	return resolved.Designation
}
