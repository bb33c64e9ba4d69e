package services

import (
	"encoding/json"
	"testing"
)

func extractedJSON(t *testing.T, p *ExtractedParams) string {
	t.Helper()
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal extracted params: %v", err)
	}
	return string(b)
}

func TestExtractParams(t *testing.T) {
	cases := []struct {
		name string
		text string
		want *ExtractedParams
	}{
		{
			name: "naca with angle",
			text: "Run a NACA 2412 at 8 degrees",
			want: &ExtractedParams{AirfoilType: "naca", NACADesignation: "2412", Alpha: floatPtr(8)},
		},
		{
			name: "five digit series",
			text: "what about naca 23012?",
			want: &ExtractedParams{AirfoilType: "naca", NACADesignation: "23012"},
		},
		{
			name: "custom blend",
			text: "camber 0.04, thickness 0.12, alpha 5",
			want: &ExtractedParams{
				AirfoilType: "custom",
				Camber:      floatPtr(0.04),
				Thickness:   floatPtr(0.12),
				Alpha:       floatPtr(5),
			},
		},
		{
			name: "preset with spelled out reynolds",
			text: "Try the high lift preset at Reynolds 2 million",
			want: &ExtractedParams{AirfoilType: "preset", PresetName: "high_lift", Reynolds: floatPtr(2e6)},
		},
		{
			name: "plain reynolds is not rescaled",
			text: "simulate high_lift at reynolds 2000000",
			want: &ExtractedParams{AirfoilType: "preset", PresetName: "high_lift", Reynolds: floatPtr(2e6)},
		},
		{
			// A run-together preset name reads as the preset, while the
			// spaced form stays a NACA designation.
			name: "preset name wins over naca",
			text: "run naca0012 for me",
			want: &ExtractedParams{AirfoilType: "preset", NACADesignation: "0012", PresetName: "naca0012"},
		},
		{
			name: "spaced designation stays naca",
			text: "run naca 0012 for me",
			want: &ExtractedParams{AirfoilType: "naca", NACADesignation: "0012"},
		},
		{
			name: "re shorthand with m suffix",
			text: "re = 5m",
			want: &ExtractedParams{Reynolds: floatPtr(5e6)},
		},
		{
			name: "re inside a word is ignored",
			text: "there are 5 degrees of flexibility here",
			want: &ExtractedParams{Alpha: floatPtr(5)},
		},
		{
			name: "thickness does not read as the thick preset",
			text: "give it thickness 0.15",
			want: &ExtractedParams{AirfoilType: "custom", Thickness: floatPtr(0.15)},
		},
		{
			name: "thick preset by name",
			text: "show me a thick airfoil",
			want: &ExtractedParams{AirfoilType: "preset", PresetName: "thick"},
		},
		{
			name: "negative alpha with keyword",
			text: "set alpha: -3",
			want: &ExtractedParams{Alpha: floatPtr(-3)},
		},
		{
			name: "degree sign",
			text: "naca 4412 at -2°",
			want: &ExtractedParams{AirfoilType: "naca", NACADesignation: "4412", Alpha: floatPtr(-2)},
		},
		{
			name: "aoa shorthand",
			text: "aoa 12 please",
			want: &ExtractedParams{Alpha: floatPtr(12)},
		},
		{
			name: "bare millions",
			text: "what changes at 3 million?",
			want: &ExtractedParams{Reynolds: floatPtr(3e6)},
		},
		{
			name: "nothing recognized",
			text: "why do planes fly?",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractParams(tc.text)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %s", extractedJSON(t, got))
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %s, got nil", extractedJSON(t, tc.want))
			}
			if g, w := extractedJSON(t, got), extractedJSON(t, tc.want); g != w {
				t.Fatalf("extracted %s, want %s", g, w)
			}
		})
	}
}

func TestHasTriggerWord(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"run a simulation", true},
		{"please analyze this one", true},
		{"Show me what happens at stall", true},
		{"I'm trying to understand camber", true},
		{"what is camber?", false},
		{"hello", false},
	}

	for _, tc := range cases {
		if got := hasTriggerWord(tc.text); got != tc.want {
			t.Fatalf("hasTriggerWord(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
