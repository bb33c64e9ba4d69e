package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

// SimulationReport carries everything the one-page run summary shows.
// Plain values only: the package renders documents, it does not run
// simulations.
type SimulationReport struct {
	Designation string
	Alpha       float64
	Reynolds    float64
	Mach        float64

	CL        float64
	CD        float64
	CM        float64
	LD        float64
	Converged bool
	Solver    string
	TimeMS    float64

	StallRisk  string
	Efficiency string

	MaxThickness         float64
	MaxThicknessLocation float64
	TrailingEdgeGap      float64
	Chord                float64

	GeneratedAt time.Time
}

// SimulationPDF renders a single-run report as an A4 PDF.
func SimulationPDF(rep SimulationReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Airfoil Simulation Report")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.Cell(0, 6, "Generated "+rep.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))
	pdf.Ln(10)
	pdf.SetTextColor(0, 0, 0)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
	}
	row := func(key, value string) {
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(60, 7, key, "1", 0, "L", true, 0, "")
		pdf.CellFormat(120, 7, value, "1", 1, "L", false, 0, "")
	}

	section("Configuration")
	row("Airfoil", rep.Designation)
	row("Angle of attack", tr(fmt.Sprintf("%.2f°", rep.Alpha)))
	row("Reynolds number", fmt.Sprintf("%.3g", rep.Reynolds))
	row("Mach number", fmt.Sprintf("%.2f", rep.Mach))
	pdf.Ln(4)

	section("Results")
	row("Lift coefficient (CL)", fmt.Sprintf("%.4f", rep.CL))
	row("Drag coefficient (CD)", fmt.Sprintf("%.6f", rep.CD))
	row("Moment coefficient (CM)", fmt.Sprintf("%.4f", rep.CM))
	row("Lift-to-drag ratio (L/D)", fmt.Sprintf("%.1f", rep.LD))
	row("Stall risk", rep.StallRisk)
	row("Efficiency rating", rep.Efficiency)
	row("Converged", yesNo(rep.Converged))
	row("Solver", fmt.Sprintf("%s (%.1f ms)", rep.Solver, rep.TimeMS))
	pdf.Ln(4)

	section("Geometry")
	row("Max thickness", fmt.Sprintf("%.1f%% chord", rep.MaxThickness*100))
	row("Max thickness location", fmt.Sprintf("%.1f%% chord", rep.MaxThicknessLocation*100))
	row("Trailing edge gap", fmt.Sprintf("%.4f", rep.TrailingEdgeGap))
	row("Chord", fmt.Sprintf("%.4f", rep.Chord))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("simulation pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
