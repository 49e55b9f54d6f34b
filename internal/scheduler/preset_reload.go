package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/index"
	"github.com/MrSnakeDoc/forge/internal/logger"
	"github.com/MrSnakeDoc/forge/internal/sources/presets"
	redisstore "github.com/MrSnakeDoc/forge/internal/store/redis"
	"github.com/MrSnakeDoc/forge/internal/utils"
)

// DefaultWatchDebounce batches the burst of events an editor save produces
const DefaultWatchDebounce = 500 * time.Millisecond

// PresetReloader keeps the preset index in sync with the built-in presets
// and the optional presets file: on start, on every interval, on manual
// trigger and, when watching, on file changes.
type PresetReloader struct {
	loader        *presets.Loader
	mapper        *presets.Mapper
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	watch         bool
	debounce      time.Duration
	stopCh        chan struct{}
	doneCh        chan struct{}
	stopOnce      sync.Once
	started       atomic.Bool
	manualTrigger chan struct{}
}

// NewPresetReloader creates a new preset reloader.
// An empty presetFile serves the built-in presets only.
func NewPresetReloader(
	presetFile string,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	watch bool,
	manualTrigger chan struct{},
) *PresetReloader {
	var loader *presets.Loader
	if presetFile != "" {
		loader = presets.NewLoader(presetFile)
	}

	return &PresetReloader{
		loader:        loader,
		mapper:        presets.NewMapper(),
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		watch:         watch && loader != nil,
		debounce:      DefaultWatchDebounce,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the presets, then keeps reloading them in the background
func (pr *PresetReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := pr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	var watcher *fsnotify.Watcher
	if pr.watch {
		w, err := pr.newWatcher()
		if err != nil {
			pr.logger.Warn("preset file watching disabled", logger.Error(err))
		} else {
			watcher = w
		}
	}

	ticker := time.NewTicker(pr.interval)
	pr.started.Store(true)
	go pr.run(ctx, ticker, watcher)

	return nil
}

// Stop stops the reloader and waits for its goroutine to exit
func (pr *PresetReloader) Stop() {
	pr.stopOnce.Do(func() { close(pr.stopCh) })
	if pr.started.Load() {
		<-pr.doneCh
	}
}

func (pr *PresetReloader) newWatcher() (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// watch the directory: editors replace files instead of writing them
	dir := filepath.Dir(pr.loader.Path())
	if err := w.Add(dir); err != nil {
		utils.Close(w)
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	pr.logger.Info("watching presets file",
		logger.String("file", pr.loader.Path()))
	return w, nil
}

func (pr *PresetReloader) run(ctx context.Context, ticker *time.Ticker, watcher *fsnotify.Watcher) {
	defer close(pr.doneCh)
	defer ticker.Stop()

	var (
		events  <-chan fsnotify.Event
		errs    <-chan error
		pending time.Time
	)
	if watcher != nil {
		defer utils.MustClose(watcher, pr.logger)
		events = watcher.Events
		errs = watcher.Errors
	}

	debounceTicker := time.NewTicker(pr.debounce / 5)
	defer debounceTicker.Stop()

	reload := func(reason string) {
		pr.logger.Info("reloading presets", logger.String("reason", reason))
		if err := pr.Reload(ctx); err != nil {
			pr.logger.Error("failed to reload presets",
				logger.Error(err))
		}
	}

	for {
		select {
		case <-ticker.C:
			reload("interval")
		case <-pr.manualTrigger:
			reload("manual")
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if pr.isPresetFileEvent(event) {
				pending = time.Now()
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			pr.logger.Warn("presets watcher error", logger.Error(err))
		case <-debounceTicker.C:
			if !pending.IsZero() && time.Since(pending) >= pr.debounce {
				pending = time.Time{}
				reload("file changed")
			}
		case <-pr.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (pr *PresetReloader) isPresetFileEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(pr.loader.Path()) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}

// Reload rebuilds the preset set and updates index + store.
// File presets replace built-in presets of the same name.
func (pr *PresetReloader) Reload(ctx context.Context) error {
	all := domain.BuiltinPresets()

	if pr.loader != nil {
		file, err := pr.loader.Load()
		if err != nil {
			return fmt.Errorf("failed to load presets: %w", err)
		}

		filePresets, err := pr.mapper.MapPresets(file)
		if err != nil {
			return fmt.Errorf("failed to map presets: %w", err)
		}

		pr.logger.Info("loaded presets from file",
			logger.Int("count", len(filePresets)))

		all = mergePresets(all, filePresets)
	}

	// Update memory index
	pr.index.UpdatePresets(all)

	// Update Redis store (best effort)
	if pr.store != nil {
		if err := pr.store.SavePresetsMany(ctx, all); err != nil {
			pr.logger.Warn("failed to save presets to redis",
				logger.Error(err))
			// Don't fail - memory index is the primary source
		} else {
			pr.logger.Debug("presets saved to redis")
		}
	}

	return nil
}

// mergePresets lays overrides over base by name
func mergePresets(base, overrides []*domain.Preset) []*domain.Preset {
	byName := make(map[string]*domain.Preset, len(base)+len(overrides))
	for _, p := range base {
		byName[p.Name] = p
	}
	for _, p := range overrides {
		byName[p.Name] = p
	}

	merged := make([]*domain.Preset, 0, len(byName))
	for _, p := range byName {
		merged = append(merged, p)
	}
	domain.SortPresets(merged)
	return merged
}
