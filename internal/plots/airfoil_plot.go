package plots

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"airfoil-lab-service/internal/airfoil"
)

// Canvas spans chosen so one chord unit covers the same length on both
// axes; sections keep their true proportions.
const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 4 * vg.Inch

	xMin = -0.1
	xMax = 1.1
	yMin = -0.3
	yMax = 0.3
)

// AirfoilPNG renders the section outline over its chord line and returns
// the encoded image.
func AirfoilPNG(coords airfoil.Coordinates, title string) ([]byte, error) {
	if len(coords) < 3 {
		return nil, fmt.Errorf("plot airfoil: need at least 3 points, got %d", len(coords))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x/c"
	p.Y.Label.Text = "y/c"
	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min, p.Y.Max = yMin, yMax
	p.Add(plotter.NewGrid())

	chord := plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 0}}
	chordLine, err := plotter.NewLine(chord)
	if err != nil {
		return nil, fmt.Errorf("plot airfoil: chord line: %w", err)
	}
	chordLine.Color = color.Gray{Y: 140}
	chordLine.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(chordLine)

	pts := make(plotter.XYs, len(coords))
	for i, c := range coords {
		pts[i] = plotter.XY{X: c.X, Y: c.Y}
	}
	surface, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("plot airfoil: surface line: %w", err)
	}
	surface.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	surface.Width = vg.Points(1.5)
	p.Add(surface)

	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("plot airfoil: render: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("plot airfoil: encode: %w", err)
	}
	return buf.Bytes(), nil
}
