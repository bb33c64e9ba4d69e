package airfoil

import (
	"fmt"
	"math"
	"strings"
)

// Spec describes an airfoil section that can produce surface coordinates.
// Values are validated at construction; Generate re-checks so that directly
// built structs fail loudly instead of producing garbage geometry.
type Spec interface {
	// Human-readable designation ("2412", "23012", "custom_c0.04_t0.12").
	Designation() string
	// Generate n points per surface (2n-1 total). n <= 0 selects
	// DefaultPoints. Cosine spacing clusters stations at both edges and is
	// the convention for published NACA coordinates.
	Generate(n int, cosineSpacing bool) (Coordinates, error)
}

// FourDigit is a NACA 4-digit section "MPTT": max camber in percent of
// chord, camber position in tenths of chord, thickness in percent.
type FourDigit struct {
	Camber    int
	CamberPos int
	Thickness int
}

// ParseFourDigit parses a 4-digit designation such as "0012" or "2412".
func ParseFourDigit(code string) (FourDigit, error) {
	digits, err := parseDigits(code, 4)
	if err != nil {
		return FourDigit{}, err
	}

	return FourDigit{
		Camber:    digits[0],
		CamberPos: digits[1],
		Thickness: digits[2]*10 + digits[3],
	}, nil
}

func (s FourDigit) Designation() string {
	return fmt.Sprintf("%d%d%02d", s.Camber, s.CamberPos, s.Thickness)
}

func (s FourDigit) validate() error {
	if s.Camber < 0 || s.Camber > 9 || s.CamberPos < 0 || s.CamberPos > 9 {
		return fmt.Errorf("%w: 4-digit camber digits out of range: m=%d p=%d", ErrInvalidSpec, s.Camber, s.CamberPos)
	}
	if s.Thickness < 0 || s.Thickness > 99 {
		return fmt.Errorf("%w: 4-digit thickness out of range: %d", ErrInvalidSpec, s.Thickness)
	}
	return nil
}

// FiveDigit is a NACA 5-digit section "LPRTT": the first digit sets the
// design lift coefficient (L * 3/20), the second the max camber position
// (P / 20), the third flags a reflexed camber line, and the last two give
// thickness in percent.
type FiveDigit struct {
	LiftDigit int
	CamberPos int
	Reflex    bool
	Thickness int
}

// ParseFiveDigit parses a 5-digit designation such as "23012". Any third
// digit other than 1 is treated as the standard (non-reflex) camber line.
func ParseFiveDigit(code string) (FiveDigit, error) {
	digits, err := parseDigits(code, 5)
	if err != nil {
		return FiveDigit{}, err
	}

	return FiveDigit{
		LiftDigit: digits[0],
		CamberPos: digits[1],
		Reflex:    digits[2] == 1,
		Thickness: digits[3]*10 + digits[4],
	}, nil
}

func (s FiveDigit) Designation() string {
	reflex := 0
	if s.Reflex {
		reflex = 1
	}
	return fmt.Sprintf("%d%d%d%02d", s.LiftDigit, s.CamberPos, reflex, s.Thickness)
}

func (s FiveDigit) validate() error {
	if s.LiftDigit < 0 || s.LiftDigit > 9 || s.CamberPos < 0 || s.CamberPos > 9 {
		return fmt.Errorf("%w: 5-digit leading digits out of range: l=%d p=%d", ErrInvalidSpec, s.LiftDigit, s.CamberPos)
	}
	if s.Thickness < 0 || s.Thickness > 99 {
		return fmt.Errorf("%w: 5-digit thickness out of range: %d", ErrInvalidSpec, s.Thickness)
	}
	return nil
}

// CamberThickness is a free-form section outside the NACA families: a
// parabolic camber line with a sqrt-chord thickness envelope. Parameters
// are chord fractions (camber 0.04 means 4% of chord).
type CamberThickness struct {
	Camber    float64
	Thickness float64
}

// NewCamberThickness validates the blend parameters. Camber may be
// negative (an inverted section); thickness may not.
func NewCamberThickness(camber, thickness float64) (CamberThickness, error) {
	s := CamberThickness{Camber: camber, Thickness: thickness}
	if err := s.validate(); err != nil {
		return CamberThickness{}, err
	}
	return s, nil
}

func (s CamberThickness) Designation() string {
	return fmt.Sprintf("custom_c%g_t%g", s.Camber, s.Thickness)
}

func (s CamberThickness) validate() error {
	if math.IsNaN(s.Camber) || math.IsInf(s.Camber, 0) || math.IsNaN(s.Thickness) || math.IsInf(s.Thickness, 0) {
		return fmt.Errorf("%w: camber and thickness must be finite", ErrInvalidSpec)
	}
	if s.Thickness < 0 {
		return fmt.Errorf("%w: thickness must be non-negative, got %g", ErrInvalidSpec, s.Thickness)
	}
	return nil
}

// ParseDesignation parses a NACA designation of either supported family,
// dispatching on length.
func ParseDesignation(code string) (Spec, error) {
	code = strings.TrimSpace(code)
	switch len(code) {
	case 4:
		s, err := ParseFourDigit(code)
		if err != nil {
			return nil, err
		}
		return s, nil
	case 5:
		s, err := ParseFiveDigit(code)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: NACA designation %q must have 4 or 5 digits", ErrInvalidSpec, code)
	}
}

func parseDigits(code string, want int) ([]int, error) {
	if len(code) != want {
		return nil, fmt.Errorf("%w: NACA designation %q must have exactly %d digits", ErrInvalidSpec, code, want)
	}

	digits := make([]int, len(code))
	for i, r := range code {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: NACA designation %q contains non-digit %q", ErrInvalidSpec, code, r)
		}
		digits[i] = int(r - '0')
	}

	return digits, nil
}
