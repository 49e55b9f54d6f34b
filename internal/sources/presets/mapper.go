package presets

import (
	"fmt"
	"time"

	"github.com/MrSnakeDoc/forge/internal/domain"
)

// SourceFile tags presets loaded from the presets file
const SourceFile = "file"

// Mapper converts preset file entries to domain.Preset entities
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapPresets converts a PresetsFile to []*domain.Preset.
// Entries without a usable name or with invalid values are skipped; a later
// entry replaces an earlier one with the same name.
func (m *Mapper) MapPresets(file PresetsFile) ([]*domain.Preset, error) {
	now := time.Now()
	byName := make(map[string]int)
	var presets []*domain.Preset

	for _, props := range file.Presets {
		preset, ok := mapPreset(props)
		if !ok {
			continue
		}
		preset.Sources = []string{SourceFile}
		preset.UpdatedAt = now

		if i, seen := byName[preset.Name]; seen {
			presets[i] = preset
			continue
		}
		byName[preset.Name] = len(presets)
		presets = append(presets, preset)
	}

	if len(presets) == 0 {
		return nil, fmt.Errorf("no valid presets found in presets file")
	}

	return presets, nil
}

func mapPreset(props PresetProps) (*domain.Preset, bool) {
	name := domain.Slugify(props.Name)
	if name == "" {
		return nil, false
	}

	preset := &domain.Preset{
		Name:        name,
		Description: props.Description,
		Theme:       domain.Theme(props.Theme),
		Layout:      domain.Layout(props.Layout),
		Position:    domain.Position(props.Position),
		Colors:      props.Colors,
		TitleText:   props.TitleText,
		PreDateText: props.PreDateText,
	}

	switch preset.Theme {
	case "", domain.ThemeLight, domain.ThemeDark, domain.ThemeGradient, domain.ThemeMinimal:
	default:
		return nil, false
	}

	// the preset must produce a valid configuration over the defaults
	if err := preset.Apply(domain.Default()).Validate(); err != nil {
		return nil, false
	}

	return preset, true
}
