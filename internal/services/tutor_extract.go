package services

import (
	"regexp"
	"strconv"
	"strings"

	"airfoil-lab-service/internal/airfoil"
)

// Parameters recognized in a natural-language tutor message. Field order
// matches extraction order; the struct serializes into the context block
// shown to the model and into the API response.
type ExtractedParams struct {
	AirfoilType     string   `json:"airfoil_type,omitempty"`
	NACADesignation string   `json:"naca_designation,omitempty"`
	PresetName      string   `json:"preset_name,omitempty"`
	Camber          *float64 `json:"camber,omitempty"`
	Thickness       *float64 `json:"thickness,omitempty"`
	Alpha           *float64 `json:"alpha,omitempty"`
	Reynolds        *float64 `json:"reynolds,omitempty"`
}

var (
	nacaRe      = regexp.MustCompile(`naca\s*(\d{5}|\d{4})`)
	camberRe    = regexp.MustCompile(`camber\s*:?\s*(\d+\.?\d*)`)
	thicknessRe = regexp.MustCompile(`thickness\s*:?\s*(\d+\.?\d*)`)

	alphaRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:alpha|angle\s*of\s*attack|aoa)\s*:?\s*(-?\d+\.?\d*)`),
		regexp.MustCompile(`(\d+\.?\d*)\s*degrees?`),
		regexp.MustCompile(`at\s*(-?\d+\.?\d*)\s*°`),
	}

	// Group 2 captures a millions suffix; it must sit next to the number
	// so that an unrelated word starting with "m" does not rescale the
	// value.
	reynoldsRes = []*regexp.Regexp{
		regexp.MustCompile(`reynolds\s*(?:number)?\s*:?\s*(\d+\.?\d*)\s*(million|m\b)?`),
		regexp.MustCompile(`\bre\b\s*[=:]?\s*(\d+\.?\d*)\s*(million|m\b)?`),
		regexp.MustCompile(`(\d+\.?\d*)\s*(million)`),
	}

	presetRes = buildPresetRes()

	triggerWords = []string{"run", "simulate", "test", "analyze", "try", "show me"}
)

// Preset names match on word boundaries; underscores in a name also match
// a space ("high lift" finds high_lift).
func buildPresetRes() []*regexp.Regexp {
	names := airfoil.PresetNames()
	res := make([]*regexp.Regexp, len(names))
	for i, name := range names {
		res[i] = regexp.MustCompile(`\b` + strings.ReplaceAll(name, "_", "[_ ]") + `\b`)
	}
	return res
}

// ExtractParams pulls airfoil and flow parameters out of free text.
// Returns nil when nothing was recognized. A preset mention wins over a
// NACA designation when both appear.
func ExtractParams(text string) *ExtractedParams {
	lower := strings.ToLower(text)
	var p ExtractedParams
	found := false

	if m := nacaRe.FindStringSubmatch(lower); m != nil {
		p.AirfoilType = "naca"
		p.NACADesignation = m[1]
		found = true
	}

	names := airfoil.PresetNames()
	for i, re := range presetRes {
		if re.MatchString(lower) {
			p.AirfoilType = "preset"
			p.PresetName = names[i]
			found = true
			break
		}
	}

	if m := camberRe.FindStringSubmatch(lower); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		p.Camber = &v
		if p.AirfoilType == "" {
			p.AirfoilType = "custom"
		}
		found = true
	}

	if m := thicknessRe.FindStringSubmatch(lower); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		p.Thickness = &v
		if p.AirfoilType == "" {
			p.AirfoilType = "custom"
		}
		found = true
	}

	for _, re := range alphaRes {
		if m := re.FindStringSubmatch(lower); m != nil {
			v, _ := strconv.ParseFloat(m[1], 64)
			p.Alpha = &v
			found = true
			break
		}
	}

	for _, re := range reynoldsRes {
		if m := re.FindStringSubmatch(lower); m != nil {
			v, _ := strconv.ParseFloat(m[1], 64)
			if m[2] != "" {
				v *= 1e6
			}
			p.Reynolds = &v
			found = true
			break
		}
	}

	if !found {
		return nil
	}
	return &p
}

func hasTriggerWord(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range triggerWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
