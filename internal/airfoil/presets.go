package airfoil

// PresetSection couples a named study section with its generator spec.
type PresetSection struct {
	Name        string
	Description string
	Spec        Spec
}

// Presets returns the built-in study sections in display order. The NACA
// entries are the classic teaching sections; the rest are free-form blends
// spanning the camber/thickness trade-off space.
func Presets() []PresetSection {
	return []PresetSection{
		{Name: "naca0012", Description: "Symmetric, 12% thick", Spec: FourDigit{Camber: 0, CamberPos: 0, Thickness: 12}},
		{Name: "naca2412", Description: "2% camber, 12% thick", Spec: FourDigit{Camber: 2, CamberPos: 4, Thickness: 12}},
		{Name: "naca4412", Description: "4% camber, 12% thick", Spec: FourDigit{Camber: 4, CamberPos: 4, Thickness: 12}},
		{Name: "naca0015", Description: "Symmetric, 15% thick", Spec: FourDigit{Camber: 0, CamberPos: 0, Thickness: 15}},
		{Name: "baseline", Description: "Custom baseline design", Spec: CamberThickness{Camber: 0.04, Thickness: 0.12}},
		{Name: "high_lift", Description: "High camber for max lift", Spec: CamberThickness{Camber: 0.08, Thickness: 0.12}},
		{Name: "low_drag", Description: "Low thickness for efficiency", Spec: CamberThickness{Camber: 0.02, Thickness: 0.10}},
		{Name: "thick", Description: "Thick section for structure", Spec: CamberThickness{Camber: 0.04, Thickness: 0.18}},
	}
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (PresetSection, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return PresetSection{}, false
}

// PresetNames lists preset names in display order.
func PresetNames() []string {
	presets := Presets()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}
