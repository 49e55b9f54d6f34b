package domain

import (
	"sort"
	"time"
)

// Theme is the visual family a preset belongs to.
type Theme string

const (
	ThemeLight    Theme = "light"
	ThemeDark     Theme = "dark"
	ThemeGradient Theme = "gradient"
	ThemeMinimal  Theme = "minimal"
)

// Preset is a named starting point for a configuration.
//
// Only the fields that are set are applied; target, expiry and identity
// always come from the session being edited.
type Preset struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// Name is the unique, lowercase identifier of the preset.
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Theme       Theme  `json:"theme,omitempty" yaml:"theme,omitempty"`

	// ─────────────────────────────
	// Appearance
	// ─────────────────────────────

	Layout      Layout   `json:"layout,omitempty" yaml:"layout,omitempty"`
	Position    Position `json:"position,omitempty" yaml:"position,omitempty"`
	Colors      Colors   `json:"colors" yaml:"colors"`
	TitleText   string   `json:"titleText,omitempty" yaml:"titleText,omitempty"`
	PreDateText string   `json:"preDateText,omitempty" yaml:"preDateText,omitempty"`

	// ─────────────────────────────
	// Provenance
	// ─────────────────────────────

	// Sources lists where the preset came from ("builtin", "file").
	Sources   []string  `json:"sources" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"-"`
}

// Apply returns cfg with the preset's appearance fields laid over it.
func (p Preset) Apply(cfg Configuration) Configuration {
	out := cfg
	if p.Layout != "" {
		out.Layout = p.Layout
	}
	if p.Position != "" {
		out.Position = p.Position
	}
	if p.Colors.Background != "" {
		out.Colors.Background = p.Colors.Background
	}
	if p.Colors.Text != "" {
		out.Colors.Text = p.Colors.Text
	}
	if p.Colors.DigitBackground != "" {
		out.Colors.DigitBackground = p.Colors.DigitBackground
	}
	if p.Colors.DigitText != "" {
		out.Colors.DigitText = p.Colors.DigitText
	}
	if p.TitleText != "" {
		out.TitleText = p.TitleText
	}
	if p.PreDateText != "" {
		out.PreDateText = p.PreDateText
	}
	return out
}

// BuiltinPresets returns one preset per theme.
func BuiltinPresets() []*Preset {
	presets := []*Preset{
		{
			Name:        "light",
			Description: "White surface with blue digits",
			Theme:       ThemeLight,
			Colors:      Colors{Background: "#ffffff", Text: "#0f172a", DigitBackground: "#2563eb", DigitText: "#ffffff"},
		},
		{
			Name:        "dark",
			Description: "Slate surface with blue digits",
			Theme:       ThemeDark,
			Colors:      Colors{Background: "#0f172a", Text: "#ffffff", DigitBackground: "#2563eb", DigitText: "#ffffff"},
		},
		{
			Name:        "gradient",
			Description: "Indigo banner with violet digits",
			Theme:       ThemeGradient,
			Layout:      LayoutBanner,
			Colors:      Colors{Background: "#4338ca", Text: "#ffffff", DigitBackground: "#7c3aed", DigitText: "#ffffff"},
		},
		{
			Name:        "minimal",
			Description: "Quiet grey bar",
			Theme:       ThemeMinimal,
			Layout:      LayoutBar,
			Colors:      Colors{Background: "#f8fafc", Text: "#334155", DigitBackground: "#e2e8f0", DigitText: "#0f172a"},
		},
	}
	for _, p := range presets {
		p.Sources = []string{"builtin"}
	}
	return presets
}

// SortPresets orders presets by name.
func SortPresets(presets []*Preset) {
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
}
