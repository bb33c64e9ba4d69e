package airfoil

import (
	"errors"
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	in := Coordinates{
		{X: 6, Y: 0.2},
		{X: 4, Y: 0.4},
		{X: 2, Y: 0},
		{X: 4, Y: -0.4},
		{X: 6, Y: -0.1},
	}

	out, err := Normalize(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Coordinates{
		{X: 1, Y: 0.05},
		{X: 0.5, Y: 0.1},
		{X: 0, Y: 0},
		{X: 0.5, Y: -0.1},
		{X: 1, Y: -0.025},
	}
	for i := range want {
		if math.Abs(out[i].X-want[i].X) > 1e-12 || math.Abs(out[i].Y-want[i].Y) > 1e-12 {
			t.Fatalf("point %d = %+v, want %+v", i, out[i], want[i])
		}
	}

	// The input must stay untouched.
	if in[0].X != 6 {
		t.Fatal("Normalize mutated its input")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	c, err := FourDigit{Camber: 2, CamberPos: 4, Thickness: 12}.Generate(100, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	once, err := Normalize(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Normalize(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range once {
		if math.Abs(once[i].X-twice[i].X) > 1e-12 || math.Abs(once[i].Y-twice[i].Y) > 1e-12 {
			t.Fatalf("point %d changed on second normalize: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	flat := Coordinates{{X: 1, Y: 0}, {X: 1, Y: 0.5}, {X: 1, Y: -0.5}}
	if _, err := Normalize(flat); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("zero chord error = %v, want ErrDegenerate", err)
	}

	if _, err := Normalize(nil); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("empty input error = %v, want ErrDegenerate", err)
	}
}

func TestPairsRoundTrip(t *testing.T) {
	c := Coordinates{{X: 1, Y: 0.01}, {X: 0, Y: 0}, {X: 1, Y: -0.01}}

	pairs := c.Pairs()
	if len(pairs) != 3 || pairs[0][0] != 1 || pairs[0][1] != 0.01 {
		t.Fatalf("pairs = %v", pairs)
	}

	back, err := FromPairs(pairs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range c {
		if back[i] != c[i] {
			t.Fatalf("point %d = %+v, want %+v", i, back[i], c[i])
		}
	}

	if _, err := FromPairs([][]float64{{1, 2, 3}}); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("bad row error = %v, want ErrInvalidSpec", err)
	}
}

func TestScaleThickness(t *testing.T) {
	c := Coordinates{{X: 0.5, Y: 0.06}, {X: 0.5, Y: -0.06}}
	scaled := c.ScaleThickness(1.5)

	if scaled[0].Y != 0.09 || scaled[1].Y != -0.09 {
		t.Fatalf("scaled = %+v", scaled)
	}
	if scaled[0].X != 0.5 {
		t.Fatal("x must not change")
	}
	if c[0].Y != 0.06 {
		t.Fatal("ScaleThickness mutated its input")
	}
}
