package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/redis/go-redis/v9"
)

// GetPreset retrieves a preset by name
func (s *Store) GetPreset(ctx context.Context, name string) (*domain.Preset, error) {
	data, err := s.client.Get(ctx, PresetKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, name)
		}
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}

	var preset domain.Preset
	if err := json.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset: %w", err)
	}

	return &preset, nil
}

// GetAllPresets retrieves all presets from Redis
func (s *Store) GetAllPresets(ctx context.Context) ([]*domain.Preset, error) {
	names, err := s.client.SMembers(ctx, AllPresetsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get preset names: %w", err)
	}

	if len(names) == 0 {
		return []*domain.Preset{}, nil
	}

	presets := make([]*domain.Preset, 0, len(names))
	for _, name := range names {
		preset, err := s.GetPreset(ctx, name)
		if err != nil {
			// Skip presets whose data expired
			continue
		}
		presets = append(presets, preset)
	}

	return presets, nil
}

// SavePresetsMany stores multiple presets in Redis (bulk operation)
func (s *Store) SavePresetsMany(ctx context.Context, presets []*domain.Preset) error {
	pipe := s.client.Pipeline()

	for _, preset := range presets {
		data, err := json.Marshal(preset)
		if err != nil {
			return fmt.Errorf("failed to marshal preset %s: %w", preset.Name, err)
		}

		pipe.Set(ctx, PresetKey(preset.Name), data, DefaultPresetTTL)
		pipe.SAdd(ctx, AllPresetsKey(), preset.Name)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}

	return nil
}
