package airfoil

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const seligFixture = `Test Section 12%
1.000000  0.001300
0.500000  0.060000
0.000000  0.000000
0.500000 -0.060000
1.000000 -0.001300
`

const lednicerFixture = `Test Section 12%

 3.  3.

0.000000  0.000000
0.500000  0.060000
1.000000  0.001300

0.000000  0.000000
0.500000 -0.060000
1.000000 -0.001300
`

func TestParseDatFileSelig(t *testing.T) {
	name, c, err := ParseDatFile(strings.NewReader(seligFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if name != "Test Section 12%" {
		t.Fatalf("name = %q", name)
	}
	if len(c) != 5 {
		t.Fatalf("len = %d, want 5", len(c))
	}
	if c[0].X != 1 || c[2].X != 0 || c[4].X != 1 {
		t.Fatalf("loop = %+v", c)
	}
}

func TestParseDatFileLednicer(t *testing.T) {
	name, c, err := ParseDatFile(strings.NewReader(lednicerFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Test Section 12%" {
		t.Fatalf("name = %q", name)
	}

	// Both layouts must produce the same loop.
	_, selig, err := ParseDatFile(strings.NewReader(seligFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c) != len(selig) {
		t.Fatalf("len = %d, want %d", len(c), len(selig))
	}
	for i := range c {
		if math.Abs(c[i].X-selig[i].X) > 1e-9 || math.Abs(c[i].Y-selig[i].Y) > 1e-9 {
			t.Fatalf("point %d = %+v, want %+v", i, c[i], selig[i])
		}
	}
}

func TestParseDatFileHeadless(t *testing.T) {
	// Files without a name line start directly with coordinates.
	raw := "1.0 0.0\n0.5 0.08\n0.0 0.0\n0.5 -0.08\n1.0 0.0\n"
	name, c, err := ParseDatFile(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "" {
		t.Fatalf("name = %q, want empty", name)
	}
	if len(c) != 5 {
		t.Fatalf("len = %d, want 5", len(c))
	}
}

func TestParseDatFileNumericName(t *testing.T) {
	// A name of two whitespace-separated words is not a coordinate pair.
	raw := "0012 AIRFOIL\n1.0 0.0\n0.0 0.0\n1.0 0.0\n"
	name, c, err := ParseDatFile(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "0012 AIRFOIL" {
		t.Fatalf("name = %q", name)
	}
	if len(c) != 3 {
		t.Fatalf("len = %d, want 3", len(c))
	}
}

func TestParseDatFileErrors(t *testing.T) {
	// Corrupt numeric data after valid points.
	raw := "Name\n1.0 0.0\n0.5 abc\n"
	if _, _, err := ParseDatFile(strings.NewReader(raw)); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("corrupt line error = %v, want ErrInvalidSpec", err)
	}

	// Name only, no data.
	if _, _, err := ParseDatFile(strings.NewReader("Just A Name\n")); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("no data error = %v, want ErrDegenerate", err)
	}

	// Too few points to form a surface.
	if _, _, err := ParseDatFile(strings.NewReader("Name\n1.0 0.0\n0.0 0.0\n")); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("two points error = %v, want ErrDegenerate", err)
	}
}

func TestParseDatFileNormalizeFlow(t *testing.T) {
	// Coordinates in millimeters normalize to unit chord.
	raw := "Scaled\n200.0 0.26\n100.0 12.0\n0.0 0.0\n100.0 -12.0\n200.0 -0.26\n"
	_, c, err := ParseDatFile(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	norm, err := Normalize(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if norm[0].X != 1 || norm[2].X != 0 {
		t.Fatalf("normalized loop = %+v", norm)
	}
	if math.Abs(norm[1].Y-0.06) > 1e-12 {
		t.Fatalf("normalized y = %g, want 0.06", norm[1].Y)
	}
}
