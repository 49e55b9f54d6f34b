package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/index"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

type stubSource struct {
	presets []*domain.Preset
	err     error
}

func (s stubSource) GetAllPresets(context.Context) ([]*domain.Preset, error) {
	return s.presets, s.err
}

func TestRedisSyncer_KeepsBuiltins(t *testing.T) {
	idx := index.NewMemoryIndex()
	src := stubSource{presets: []*domain.Preset{{Name: "launch", Layout: domain.LayoutBar}}}

	require.NoError(t, NewRedisSyncer(src, idx, logger.Nop()).Sync(context.Background()))

	assert.Equal(t, 5, idx.PresetCount())
	_, ok := idx.GetPreset("launch")
	assert.True(t, ok)
	_, ok = idx.GetPreset("gradient")
	assert.True(t, ok)
}

func TestRedisSyncer_EmptyMirrorLeavesIndex(t *testing.T) {
	idx := index.NewMemoryIndex()

	require.NoError(t, NewRedisSyncer(stubSource{}, idx, logger.Nop()).Sync(context.Background()))
	assert.Zero(t, idx.PresetCount())
}

func TestRedisSyncer_Error(t *testing.T) {
	idx := index.NewMemoryIndex()
	src := stubSource{err: errors.New("connection refused")}

	err := NewRedisSyncer(src, idx, logger.Nop()).Sync(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}
