package presets

import "github.com/MrSnakeDoc/forge/internal/domain"

// PresetsFile represents the top-level structure of a presets file
type PresetsFile struct {
	Presets []PresetProps `yaml:"presets"`
}

// PresetProps is one preset entry as written in YAML
type PresetProps struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Theme       string        `yaml:"theme,omitempty"`
	Layout      string        `yaml:"layout,omitempty"`
	Position    string        `yaml:"position,omitempty"`
	Colors      domain.Colors `yaml:"colors,omitempty"`
	TitleText   string        `yaml:"titleText,omitempty"`
	PreDateText string        `yaml:"preDateText,omitempty"`
}

// ConfigFile is a configuration document for offline export and watch.
// Preset, when set, is applied before the inline configuration fields.
type ConfigFile struct {
	Preset               string `yaml:"preset,omitempty"`
	domain.Configuration `yaml:",inline"`
}
