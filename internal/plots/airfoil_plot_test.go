package plots

import (
	"bytes"
	"testing"

	"airfoil-lab-service/internal/airfoil"
)

func TestAirfoilPNG(t *testing.T) {
	spec, err := airfoil.ParseDesignation("0012")
	if err != nil {
		t.Fatalf("parse designation: %v", err)
	}
	coords, err := spec.Generate(0, true)
	if err != nil {
		t.Fatalf("generate coordinates: %v", err)
	}

	png, err := AirfoilPNG(coords, "NACA 0012")
	if err != nil {
		t.Fatalf("render plot: %v", err)
	}
	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if !bytes.HasPrefix(png, sig) {
		t.Fatal("output does not start with the PNG signature")
	}
	if len(png) < 1000 {
		t.Fatalf("suspiciously small image: %d bytes", len(png))
	}
}

func TestAirfoilPNGRejectsDegenerateInput(t *testing.T) {
	coords := airfoil.Coordinates{{X: 0, Y: 0}, {X: 1, Y: 0}}
	if _, err := AirfoilPNG(coords, "line"); err == nil {
		t.Fatal("expected an error for fewer than 3 points")
	}
}
