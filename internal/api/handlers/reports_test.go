package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"airfoil-lab-service/internal/platform/ratelimit"
)

func TestSimulationReportPDF(t *testing.T) {
	h := &ReportHandler{Predictor: &fakePredictor{res: goodResult()}}

	body := `{"airfoil_type": "naca", "naca_designation": "2412", "alpha": 5, "reynolds": 1000000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/simulation", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Simulation(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="simulation_report.pdf"` {
		t.Fatalf("unexpected disposition: %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("body does not start with a PDF header")
	}
}

func TestPolarReportXLSX(t *testing.T) {
	h := &ReportHandler{Predictor: &fakePredictor{res: goodResult()}}

	body := `{"airfoil_type": "naca", "naca_designation": "0012", "alpha_min": 0, "alpha_max": 4, "alpha_step": 2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/polar", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Polar(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="polar_report.xlsx"` {
		t.Fatalf("unexpected disposition: %q", cd)
	}
	// XLSX is a zip container.
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Fatal("body does not start with a zip header")
	}
}

func TestSimulationReportQuotaShared(t *testing.T) {
	pred := &fakePredictor{res: goodResult()}
	quota := ratelimit.PerHour(1)
	reports := &ReportHandler{Predictor: pred, Quota: quota}
	sims := &SimulationHandler{Predictor: pred, Quota: quota}

	body := `{"airfoil_type": "naca", "naca_designation": "0012"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulations/run", strings.NewReader(body))
	rec := httptest.NewRecorder()
	sims.Run(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("run: expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/reports/simulation", strings.NewReader(body))
	rec = httptest.NewRecorder()
	reports.Simulation(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("report: expected 429 after the budget is spent, got %d", rec.Code)
	}
}
