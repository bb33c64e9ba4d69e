package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/api/dto"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/platform/ratelimit"
	"airfoil-lab-service/internal/ports"
	"airfoil-lab-service/internal/services"
)

// Version of the NeuralFoil surrogate the prediction stack was validated
// against, reported by the solver health endpoint.
const solverVersion = "0.3.2"

const (
	defaultAlpha    = 5.0
	defaultReynolds = 1e6
)

type SimulationHandler struct {
	Predictor ports.AeroPredictor
	Repo      ports.SimulationRepository
	// Per-IP prediction budget; nil disables the quota.
	Quota *ratelimit.PerIP
}

// allowQuota charges cost predictions against the caller's hourly budget.
// The 429 is already written when it returns false.
func (h *SimulationHandler) allowQuota(w http.ResponseWriter, r *http.Request, cost int) bool {
	if h.Quota == nil {
		return true
	}
	if !h.Quota.AllowN(ratelimit.ClientIP(r), cost) {
		writeError(w, r, http.StatusTooManyRequests, "simulation quota exceeded, try again later")
		return false
	}
	return true
}

// Run executes a single prediction for one airfoil at one flow condition.
func (h *SimulationHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RunSimulationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cond := domain.FlightCondition{
		Alpha:    defaultAlpha,
		Reynolds: defaultReynolds,
		Mach:     req.Mach,
	}
	if req.Alpha != nil {
		cond.Alpha = *req.Alpha
	}
	if req.Reynolds != nil {
		cond.Reynolds = *req.Reynolds
	}

	if !h.allowQuota(w, r, 1) {
		return
	}

	out, err := services.RunSimulation(r.Context(), services.SimulationRequest{
		Airfoil:   selectorFromDTO(req.AirfoilSelector),
		Condition: cond,
		UserID:    userIDPtr(r),
	}, h.Predictor, h.Repo)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RunSimulationResponse{
		AeroResultResponse: aeroResultDTO(out.Result),
		Coordinates:        out.Coordinates.Pairs(),
		Properties:         propertiesDTO(out.Properties),
	})
}

// Polar sweeps the angle of attack and returns one row per station.
func (h *SimulationHandler) Polar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PolarRequest
	if !decodeBody(w, r, &req) {
		return
	}

	svcReq := services.PolarRequest{
		Airfoil: services.AirfoilSelector{
			Type:        req.AirfoilType,
			Designation: req.NACADesignation,
			PresetName:  req.PresetName,
			Camber:      req.Camber,
			Thickness:   req.Thickness,
			Points:      req.Points,
		},
		AlphaMin:  0,
		AlphaMax:  15,
		AlphaStep: 1,
		Reynolds:  defaultReynolds,
	}
	if req.AlphaMin != nil {
		svcReq.AlphaMin = *req.AlphaMin
	}
	if req.AlphaMax != nil {
		svcReq.AlphaMax = *req.AlphaMax
	}
	if req.AlphaStep != nil {
		svcReq.AlphaStep = *req.AlphaStep
	}
	if req.Reynolds != nil {
		svcReq.Reynolds = *req.Reynolds
	}

	if !h.allowQuota(w, r, sweepCost(svcReq.AlphaMin, svcReq.AlphaMax, svcReq.AlphaStep)) {
		return
	}

	out, err := services.PolarSweep(r.Context(), svcReq, h.Predictor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.PolarResponse{
		PolarData:   make([]dto.PolarPointResponse, 0, len(out.Points)),
		Coordinates: out.Coordinates.Pairs(),
	}
	for _, p := range out.Points {
		res.PolarData = append(res.PolarData, dto.PolarPointResponse{
			Alpha:     p.Alpha,
			CL:        p.Result.CL,
			CD:        p.Result.CD,
			CM:        p.Result.CM,
			LD:        p.Result.LD,
			Converged: p.Result.Converged,
			TimeMS:    p.Result.TimeMS,
			Solver:    p.Result.Solver,
			Error:     p.Err,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Optimize searches thickness scalings of the requested section for a
// better lift-to-drag ratio.
func (h *SimulationHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cond := domain.FlightCondition{Alpha: defaultAlpha, Reynolds: defaultReynolds}
	if req.Alpha != nil {
		cond.Alpha = *req.Alpha
	}
	if req.Reynolds != nil {
		cond.Reynolds = *req.Reynolds
	}

	iterations := req.Iterations
	if iterations == 0 {
		iterations = 10
	}
	if !h.allowQuota(w, r, iterations+1) {
		return
	}

	out, err := services.OptimizeAirfoil(r.Context(), services.OptimizeRequest{
		Airfoil:    selectorFromDTO(req.AirfoilSelector),
		Condition:  cond,
		Iterations: req.Iterations,
	}, h.Predictor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{
		Before:               aeroResultDTO(out.Baseline),
		After:                aeroResultDTO(out.Best),
		ImprovementPercent:   out.ImprovementPercent,
		OptimizedCoordinates: out.Coordinates.Pairs(),
	})
}

// Presets lists the built-in study sections.
func (h *SimulationHandler) Presets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	presets := airfoil.Presets()
	res := dto.PresetsResponse{
		Presets:  make([]string, 0, len(presets)),
		Examples: make(map[string]string, len(presets)),
	}
	for _, p := range presets {
		res.Presets = append(res.Presets, p.Name)
		res.Examples[p.Name] = p.Description
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Recent lists stored runs, newest first. Authenticated callers see their
// own runs; anonymous callers see the shared feed.
func (h *SimulationHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	sims, err := h.Repo.ListSimulations(r.Context(), userIDPtr(r), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.RecentSimulationsResponse{
		Simulations: make([]dto.SimulationRecord, 0, len(sims)),
	}
	for _, s := range sims {
		res.Simulations = append(res.Simulations, simulationRecordDTO(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Health exercises the prediction path end to end with a NACA 0012 test
// section. Failures carry the underlying error; this endpoint exists to
// diagnose the solver link.
func (h *SimulationHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	spec, err := airfoil.ParseDesignation("0012")
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Health check failed: %v", err))
		return
	}
	coords, err := spec.Generate(0, true)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Health check failed: %v", err))
		return
	}

	res, err := h.Predictor.Predict(r.Context(), coords, domain.FlightCondition{
		Alpha:    defaultAlpha,
		Reynolds: defaultReynolds,
	})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Health check failed: %v", err))
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SimulationHealthResponse{
		Status:        "healthy",
		Solver:        res.Solver,
		Version:       solverVersion,
		TestLatencyMS: res.TimeMS,
	})
}

// sweepCost is the quota charge for a polar: one prediction per station.
// Degenerate ranges still cost one token; the service rejects them later.
func sweepCost(min, max, step float64) int {
	if step <= 0 || max < min {
		return 1
	}
	n := int((max-min)/step) + 1
	if n < 1 {
		n = 1
	}
	return n
}

func selectorFromDTO(sel dto.AirfoilSelector) services.AirfoilSelector {
	return services.AirfoilSelector{
		Type:        sel.AirfoilType,
		Designation: sel.NACADesignation,
		PresetName:  sel.PresetName,
		Camber:      sel.Camber,
		Thickness:   sel.Thickness,
		Coordinates: sel.Coordinates,
		Points:      sel.Points,
	}
}

func aeroResultDTO(res domain.AeroResult) dto.AeroResultResponse {
	return dto.AeroResultResponse{
		CL:        res.CL,
		CD:        res.CD,
		CM:        res.CM,
		LD:        res.LD,
		Converged: res.Converged,
		TimeMS:    res.TimeMS,
		Solver:    res.Solver,
	}
}

func propertiesDTO(p airfoil.Properties) dto.PropertiesResponse {
	return dto.PropertiesResponse{
		MaxThickness:         p.MaxThickness,
		MaxThicknessLocation: p.MaxThicknessLocation,
		TrailingEdgeGap:      p.TrailingEdgeGap,
		Chord:                p.Chord,
	}
}

func simulationRecordDTO(s *domain.Simulation) dto.SimulationRecord {
	return dto.SimulationRecord{
		ID:           s.ID,
		AirfoilType:  s.AirfoilType,
		Designation:  s.Designation,
		Camber:       s.Camber,
		Thickness:    s.Thickness,
		Alpha:        s.Alpha,
		Reynolds:     s.Reynolds,
		Mach:         s.Mach,
		Solver:       s.Solver,
		Status:       s.Status,
		CL:           s.CL,
		CD:           s.CD,
		LD:           s.LD,
		Converged:    s.Converged,
		TimeMS:       s.TimeMS,
		ErrorMessage: s.ErrorMessage,
		CreatedAt:    s.CreatedAt.UTC().Format(time.RFC3339),
	}
}
