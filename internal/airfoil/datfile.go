package airfoil

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseDatFile reads an airfoil coordinate file in either common layout:
// Selig (name line, then a single x y block tracing TE-LE-TE) or Lednicer
// (name line, then upper and lower surfaces LE-TE as two blank-separated
// blocks, optionally preceded by a point-count line like "61. 61."). The
// returned loop is unnormalized; callers typically pass it to Normalize.
func ParseDatFile(r io.Reader) (string, Coordinates, error) {
	scanner := bufio.NewScanner(r)

	var (
		name   string
		blocks [][]Point
		cur    []Point
	)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}

		pt, ok := parsePointLine(line)
		if !ok {
			// The first unparseable line names the section; later ones are
			// corrupt data.
			if name == "" && len(blocks) == 0 && len(cur) == 0 {
				name = line
				continue
			}
			return "", nil, fmt.Errorf("%w: unparseable coordinate line %d: %q", ErrInvalidSpec, lineNo, line)
		}
		cur = append(cur, pt)
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("read coordinate file: %w", err)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}

	// Lednicer files carry the surface point counts as whole numbers above
	// 1, either as their own block or fused to the upper surface block.
	if len(blocks) > 0 && len(blocks[0]) == 1 && isCountPair(blocks[0][0]) {
		blocks = blocks[1:]
	} else if len(blocks) > 0 && len(blocks[0]) > 1 && isCountPair(blocks[0][0]) {
		blocks[0] = blocks[0][1:]
	}

	var loop Coordinates
	switch len(blocks) {
	case 0:
		return "", nil, fmt.Errorf("%w: no coordinate data", ErrDegenerate)
	case 1:
		loop = Coordinates(blocks[0])
	case 2:
		loop = stitchSurfaces(blocks[0], blocks[1])
	default:
		return "", nil, fmt.Errorf("%w: expected one or two coordinate blocks, got %d", ErrInvalidSpec, len(blocks))
	}

	if len(loop) < 3 {
		return "", nil, fmt.Errorf("%w: only %d coordinate points", ErrDegenerate, len(loop))
	}

	return name, loop, nil
}

// stitchSurfaces joins LE-TE upper and lower surfaces into the standard
// TE-LE-TE loop, dropping the lower surface's leading point when it
// duplicates the shared leading edge.
func stitchSurfaces(upper, lower []Point) Coordinates {
	out := make(Coordinates, 0, len(upper)+len(lower))
	for i := len(upper) - 1; i >= 0; i-- {
		out = append(out, upper[i])
	}

	start := 0
	if len(upper) > 0 && len(lower) > 0 && samePoint(upper[0], lower[0]) {
		start = 1
	}
	out = append(out, lower[start:]...)

	return out
}

func parsePointLine(line string) (Point, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Point{}, false
	}

	x, errX := strconv.ParseFloat(fields[0], 64)
	y, errY := strconv.ParseFloat(fields[1], 64)
	if errX != nil || errY != nil {
		return Point{}, false
	}

	return Point{X: x, Y: y}, true
}

// A count pair holds the two surface sizes; chord-unit coordinates never
// have both components whole and above one.
func isCountPair(p Point) bool {
	return p.X > 1+1e-9 && p.Y > 1+1e-9 &&
		p.X == math.Trunc(p.X) && p.Y == math.Trunc(p.Y)
}

func samePoint(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}
