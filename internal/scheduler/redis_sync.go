package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

// PresetSource lists the presets mirrored by another replica.
type PresetSource interface {
	GetAllPresets(ctx context.Context) ([]*domain.Preset, error)
}

// PresetSink receives a preset catalogue.
type PresetSink interface {
	UpdatePresets(presets []*domain.Preset)
}

// RedisSyncer warms the in-memory catalogue from the redis mirror, so a new
// replica serves the presets of a file it cannot read yet.
type RedisSyncer struct {
	source PresetSource
	sink   PresetSink
	logger logger.Logger
}

func NewRedisSyncer(source PresetSource, sink PresetSink, log logger.Logger) *RedisSyncer {
	return &RedisSyncer{source: source, sink: sink, logger: log}
}

// Sync copies the mirrored presets once. Built-in presets are always part of
// the result, whatever the mirror holds.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	mirrored, err := rs.source.GetAllPresets(ctx)
	if err != nil {
		return fmt.Errorf("failed to read preset mirror: %w", err)
	}
	if len(mirrored) == 0 {
		rs.logger.Info("preset mirror is empty")
		return nil
	}

	rs.sink.UpdatePresets(mergePresets(domain.BuiltinPresets(), mirrored))
	rs.logger.Info("synced presets from redis",
		logger.Int("count", len(mirrored)))
	return nil
}
