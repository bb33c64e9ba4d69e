package services

import (
	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
)

// AirfoilSelector names an airfoil one of three ways: a NACA designation,
// a preset from the built-in catalogue, or a custom section given either
// as raw coordinates or as a camber/thickness blend. Exactly the shape
// the HTTP API accepts.
type AirfoilSelector struct {
	Type        string
	Designation string
	PresetName  string
	Camber      *float64
	Thickness   *float64
	Coordinates [][]float64
	Points      int
}

// ResolvedAirfoil is a selector turned into concrete geometry plus the
// labels recorded with a simulation run.
type ResolvedAirfoil struct {
	Coordinates airfoil.Coordinates
	Type        string
	Designation string
	Camber      *float64
	Thickness   *float64
}

// ResolveAirfoil turns a selector into surface coordinates. Raw coordinate
// input is normalized to unit chord; generated sections already are.
func ResolveAirfoil(sel AirfoilSelector) (ResolvedAirfoil, error) {
	switch sel.Type {
	case "naca":
		if sel.Designation == "" {
			return ResolvedAirfoil{}, requestErrorf("NACA designation required for airfoil_type='naca'")
		}
		spec, err := airfoil.ParseDesignation(sel.Designation)
		if err != nil {
			return ResolvedAirfoil{}, err
		}
		coords, err := spec.Generate(sel.Points, true)
		if err != nil {
			return ResolvedAirfoil{}, err
		}
		return ResolvedAirfoil{Coordinates: coords, Type: "naca", Designation: spec.Designation()}, nil

	case "preset":
		if sel.PresetName == "" {
			return ResolvedAirfoil{}, requestErrorf("preset_name required for airfoil_type='preset'")
		}
		preset, ok := airfoil.LookupPreset(sel.PresetName)
		if !ok {
			return ResolvedAirfoil{}, requestErrorf("Unknown preset. Available: %v", airfoil.PresetNames())
		}
		coords, err := preset.Spec.Generate(sel.Points, true)
		if err != nil {
			return ResolvedAirfoil{}, err
		}
		return ResolvedAirfoil{Coordinates: coords, Type: "preset", Designation: preset.Name}, nil

	case "custom":
		// Raw coordinates win over blend parameters when both are sent.
		if len(sel.Coordinates) > 0 {
			coords, err := airfoil.FromPairs(sel.Coordinates)
			if err != nil {
				return ResolvedAirfoil{}, err
			}
			coords, err = airfoil.Normalize(coords)
			if err != nil {
				return ResolvedAirfoil{}, err
			}
			return ResolvedAirfoil{Coordinates: coords, Type: "custom", Designation: "custom"}, nil
		}
		if sel.Camber != nil && sel.Thickness != nil {
			if *sel.Camber < 0 || *sel.Camber > 0.15 {
				return ResolvedAirfoil{}, requestErrorf("camber must be between 0 and 0.15")
			}
			if *sel.Thickness < 0.05 || *sel.Thickness > 0.25 {
				return ResolvedAirfoil{}, requestErrorf("thickness must be between 0.05 and 0.25")
			}
			spec, err := airfoil.NewCamberThickness(*sel.Camber, *sel.Thickness)
			if err != nil {
				return ResolvedAirfoil{}, err
			}
			coords, err := spec.Generate(sel.Points, true)
			if err != nil {
				return ResolvedAirfoil{}, err
			}
			return ResolvedAirfoil{
				Coordinates: coords,
				Type:        "custom",
				Designation: spec.Designation(),
				Camber:      sel.Camber,
				Thickness:   sel.Thickness,
			}, nil
		}
		return ResolvedAirfoil{}, requestErrorf("Custom airfoil requires either 'coordinates' or 'camber' + 'thickness'")

	default:
		return ResolvedAirfoil{}, requestErrorf("Invalid airfoil_type. Must be 'naca', 'preset', or 'custom'")
	}
}

// ValidateCondition checks flow conditions against the envelope the
// predictor was trained for.
func ValidateCondition(cond domain.FlightCondition) error {
	if cond.Alpha < -20 || cond.Alpha > 30 {
		return requestErrorf("alpha must be between -20 and 30 degrees")
	}
	if cond.Reynolds < 1e4 || cond.Reynolds > 1e7 {
		return requestErrorf("reynolds must be between 1e4 and 1e7")
	}
	if cond.Mach < 0 || cond.Mach > 0.3 {
		return requestErrorf("mach must be between 0 and 0.3")
	}
	return nil
}
