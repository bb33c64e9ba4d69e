package reports

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const polarSheet = "Polar"

// One polar station. Err marks stations whose prediction failed; their
// coefficient cells stay zero.
type PolarRow struct {
	Alpha     float64
	CL        float64
	CD        float64
	CM        float64
	LD        float64
	Converged bool
	Err       string
}

type PolarWorkbook struct {
	Designation string
	Reynolds    float64
	Rows        []PolarRow
	GeneratedAt time.Time
}

// PolarXLSX renders a polar sweep as a spreadsheet: a context line, a
// header row, then one row per station.
func PolarXLSX(wb PolarWorkbook) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", polarSheet); err != nil {
		return nil, fmt.Errorf("polar xlsx: %w", err)
	}

	info := []any{
		"Airfoil", wb.Designation,
		"Reynolds", wb.Reynolds,
		"Generated", wb.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"),
	}
	if err := f.SetSheetRow(polarSheet, "A1", &info); err != nil {
		return nil, fmt.Errorf("polar xlsx: %w", err)
	}

	header := []any{"Alpha (deg)", "CL", "CD", "CM", "L/D", "Converged", "Error"}
	if err := f.SetSheetRow(polarSheet, "A3", &header); err != nil {
		return nil, fmt.Errorf("polar xlsx: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("polar xlsx: %w", err)
	}
	if err := f.SetCellStyle(polarSheet, "A3", "G3", bold); err != nil {
		return nil, fmt.Errorf("polar xlsx: %w", err)
	}

	for i, row := range wb.Rows {
		cells := []any{row.Alpha, row.CL, row.CD, row.CM, row.LD, row.Converged, row.Err}
		if err := f.SetSheetRow(polarSheet, fmt.Sprintf("A%d", i+4), &cells); err != nil {
			return nil, fmt.Errorf("polar xlsx: row %d: %w", i, err)
		}
	}

	if err := f.SetColWidth(polarSheet, "A", "G", 14); err != nil {
		return nil, fmt.Errorf("polar xlsx: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("polar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
