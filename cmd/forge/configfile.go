package main

import (
	"context"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/index"
	"github.com/MrSnakeDoc/forge/internal/scheduler"
	"github.com/MrSnakeDoc/forge/internal/sources/presets"
)

// loadConfiguration reads a configuration file and lays the selected preset
// over it. presetName, when set, replaces the preset named in the file.
func loadConfiguration(ctx context.Context, path, presetName, presetsFile string) (domain.Configuration, error) {
	file, err := presets.LoadConfigFile(path)
	if err != nil {
		return domain.Configuration{}, err
	}

	cfg := file.Configuration
	name := file.Preset
	if presetName != "" {
		name = presetName
	}
	if name == "" {
		return cfg, nil
	}

	idx := index.NewMemoryIndex()
	reloader := scheduler.NewPresetReloader(presetsFile, nil, idx, cliLogger, 0, false, nil)
	if err := reloader.Reload(ctx); err != nil {
		return domain.Configuration{}, err
	}

	preset, ok := idx.GetPreset(name)
	if !ok {
		return domain.Configuration{}, domain.PresetNotFound(name, idx.GetAllPresets())
	}
	return preset.Apply(cfg), nil
}
