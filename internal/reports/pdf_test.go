package reports

import (
	"bytes"
	"testing"
	"time"
)

func TestSimulationPDF(t *testing.T) {
	rep := SimulationReport{
		Designation:          "NACA 2412",
		Alpha:                5,
		Reynolds:             1e6,
		Mach:                 0.1,
		CL:                   0.82,
		CD:                   0.011,
		CM:                   -0.05,
		LD:                   74.5,
		Converged:            true,
		Solver:               "neuralfoil",
		TimeMS:               3.2,
		StallRisk:            "low",
		Efficiency:           "good",
		MaxThickness:         0.12,
		MaxThicknessLocation: 0.3,
		TrailingEdgeGap:      0.002,
		Chord:                1,
		GeneratedAt:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	pdf, err := SimulationPDF(rep)
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatal("output does not start with a PDF header")
	}
	if len(pdf) < 1000 {
		t.Fatalf("suspiciously small pdf: %d bytes", len(pdf))
	}
}
