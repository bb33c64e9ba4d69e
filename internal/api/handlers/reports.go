package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"airfoil-lab-service/internal/api/dto"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/platform/ratelimit"
	"airfoil-lab-service/internal/ports"
	"airfoil-lab-service/internal/reports"
	"airfoil-lab-service/internal/services"
)

// ReportHandler runs a request and streams the rendered document back.
// Report runs are not persisted; the learner keeps the file instead.
type ReportHandler struct {
	Predictor ports.AeroPredictor
	Quota     *ratelimit.PerIP
}

func (h *ReportHandler) allowQuota(w http.ResponseWriter, r *http.Request, cost int) bool {
	if h.Quota == nil {
		return true
	}
	if !h.Quota.AllowN(ratelimit.ClientIP(r), cost) {
		writeError(w, r, http.StatusTooManyRequests, "simulation quota exceeded, try again later")
		return false
	}
	return true
}

// Simulation renders a one-page PDF for a single run.
func (h *ReportHandler) Simulation(w http.ResponseWriter, r *http.Request) {
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
	}, h.Predictor, nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pdf, err := reports.SimulationPDF(reports.SimulationReport{
		Designation:          reportLabel(req.AirfoilType, req.NACADesignation, req.PresetName),
		Alpha:                cond.Alpha,
		Reynolds:             cond.Reynolds,
		Mach:                 cond.Mach,
		CL:                   out.Result.CL,
		CD:                   out.Result.CD,
		CM:                   out.Result.CM,
		LD:                   out.Result.LD,
		Converged:            out.Result.Converged,
		Solver:               out.Result.Solver,
		TimeMS:               out.Result.TimeMS,
		StallRisk:            out.Result.StallRisk(cond.Alpha),
		Efficiency:           out.Result.EfficiencyRating(),
		MaxThickness:         out.Properties.MaxThickness,
		MaxThicknessLocation: out.Properties.MaxThicknessLocation,
		TrailingEdgeGap:      out.Properties.TrailingEdgeGap,
		Chord:                out.Properties.Chord,
		GeneratedAt:          time.Now(),
	})
	if err != nil {
		log.Printf("render simulation pdf failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeAttachment(w, r, "application/pdf", "simulation_report.pdf", pdf)
}

// Polar renders a sweep as a spreadsheet.
func (h *ReportHandler) Polar(w http.ResponseWriter, r *http.Request) {
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

	wb := reports.PolarWorkbook{
		Designation: reportLabel(req.AirfoilType, req.NACADesignation, req.PresetName),
		Reynolds:    svcReq.Reynolds,
		GeneratedAt: time.Now(),
	}
	for _, p := range out.Points {
		wb.Rows = append(wb.Rows, reports.PolarRow{
			Alpha:     p.Alpha,
			CL:        p.Result.CL,
			CD:        p.Result.CD,
			CM:        p.Result.CM,
			LD:        p.Result.LD,
			Converged: p.Result.Converged,
			Err:       p.Err,
		})
	}

	xlsx, err := reports.PolarXLSX(wb)
	if err != nil {
		log.Printf("render polar xlsx failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeAttachment(w, r,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"polar_report.xlsx", xlsx)
}

func writeAttachment(w http.ResponseWriter, r *http.Request, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("write attachment failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

// reportLabel names the section on the document header.
func reportLabel(airfoilType, designation, presetName string) string {
	switch airfoilType {
	case "naca":
		return "NACA " + designation
	case "preset":
		return presetName
	default:
		return "custom"
	}
}
