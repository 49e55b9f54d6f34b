package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/index"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

const launchPresets = `presets:
  - name: launch
    theme: dark
    layout: bar
  - name: dark
    description: Overridden dark
`

func writePresets(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestPresetReloader_BuiltinsOnly(t *testing.T) {
	idx := index.NewMemoryIndex()
	pr := NewPresetReloader("", nil, idx, logger.Nop(), time.Hour, true, nil)

	require.NoError(t, pr.Reload(context.Background()))
	assert.Equal(t, 4, idx.PresetCount())
	assert.False(t, pr.watch, "nothing to watch without a file")
}

func TestPresetReloader_FileOverridesBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	writePresets(t, path, launchPresets)

	idx := index.NewMemoryIndex()
	pr := NewPresetReloader(path, nil, idx, logger.Nop(), time.Hour, false, nil)

	require.NoError(t, pr.Reload(context.Background()))

	names := make([]string, 0)
	for _, p := range idx.GetAllPresets() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"dark", "gradient", "launch", "light", "minimal"}, names)

	dark, ok := idx.GetPreset("dark")
	require.True(t, ok)
	assert.Equal(t, "Overridden dark", dark.Description)
	assert.Equal(t, []string{"file"}, dark.Sources)
}

func TestPresetReloader_BrokenFileKeepsIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	writePresets(t, path, launchPresets)

	idx := index.NewMemoryIndex()
	pr := NewPresetReloader(path, nil, idx, logger.Nop(), time.Hour, false, nil)
	require.NoError(t, pr.Reload(context.Background()))

	writePresets(t, path, "presets: [")
	assert.Error(t, pr.Reload(context.Background()))
	_, ok := idx.GetPreset("launch")
	assert.True(t, ok)
}

func TestPresetReloader_StartFailsOnMissingFile(t *testing.T) {
	pr := NewPresetReloader("/nonexistent/presets.yaml", nil, index.NewMemoryIndex(),
		logger.Nop(), time.Hour, false, nil)

	assert.Error(t, pr.Start(context.Background()))
	pr.Stop()
}

func TestPresetReloader_ManualTrigger(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "presets.yaml")
	writePresets(t, path, launchPresets)

	idx := index.NewMemoryIndex()
	trigger := make(chan struct{}, 1)
	pr := NewPresetReloader(path, nil, idx, logger.Nop(), time.Hour, false, trigger)
	require.NoError(t, pr.Start(context.Background()))
	defer pr.Stop()

	writePresets(t, path, "presets:\n  - name: spring\n")
	trigger <- struct{}{}

	assert.Eventually(t, func() bool {
		_, ok := idx.GetPreset("spring")
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPresetReloader_WatchesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	writePresets(t, path, launchPresets)

	idx := index.NewMemoryIndex()
	pr := NewPresetReloader(path, nil, idx, logger.Nop(), time.Hour, true, nil)
	pr.debounce = 50 * time.Millisecond
	require.NoError(t, pr.Start(context.Background()))
	defer pr.Stop()

	writePresets(t, path, "presets:\n  - name: summer\n    layout: box\n")

	assert.Eventually(t, func() bool {
		p, ok := idx.GetPreset("summer")
		return ok && p.Layout == domain.LayoutBox
	}, 3*time.Second, 20*time.Millisecond)
}

func TestMergePresets(t *testing.T) {
	merged := mergePresets(
		[]*domain.Preset{{Name: "b"}, {Name: "a", Description: "builtin"}},
		[]*domain.Preset{{Name: "a", Description: "file"}, {Name: "c"}},
	)

	require.Len(t, merged, 3)
	assert.Equal(t, "a", merged[0].Name)
	assert.Equal(t, "file", merged[0].Description)
	assert.Equal(t, "c", merged[2].Name)
}
