package index

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/forge/internal/domain"
)

// MemoryIndex provides in-memory storage for presets and editing sessions.
// It acts as a fallback when Redis is unavailable
type MemoryIndex struct {
	mu         sync.RWMutex
	presets    map[string]*domain.Preset  // Name -> Preset
	sessions   map[string]*domain.Session // ID -> Session
	lastReload time.Time                  // Timestamp of last presets reload
	now        func() time.Time
}

// NewMemoryIndex creates a new memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		presets:  make(map[string]*domain.Preset),
		sessions: make(map[string]*domain.Session),
		now:      time.Now,
	}
}

// UpdatePresets replaces all presets in the index
func (idx *MemoryIndex) UpdatePresets(presets []*domain.Preset) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Clear and rebuild
	idx.presets = make(map[string]*domain.Preset, len(presets))
	for _, preset := range presets {
		idx.presets[preset.Name] = preset
	}
	idx.lastReload = idx.now()
}

// GetPreset retrieves a preset by name
func (idx *MemoryIndex) GetPreset(name string) (*domain.Preset, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	preset, ok := idx.presets[name]
	return preset, ok
}

// GetAllPresets returns all presets ordered by name
func (idx *MemoryIndex) GetAllPresets() []*domain.Preset {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	presets := make([]*domain.Preset, 0, len(idx.presets))
	for _, preset := range idx.presets {
		presets = append(presets, preset)
	}
	domain.SortPresets(presets)
	return presets
}

// PresetCount returns the number of presets in the index
func (idx *MemoryIndex) PresetCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.presets)
}

// GetLastReload returns the timestamp of the last presets reload
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// ─────────────────────────────────────────────────────────────────
// Session methods
// ─────────────────────────────────────────────────────────────────

// SaveSession adds or replaces a session. The index keeps its own copy.
func (idx *MemoryIndex) SaveSession(_ context.Context, session *domain.Session) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	cp := *session
	idx.sessions[session.ID] = &cp
	return nil
}

// GetSession retrieves a copy of a session by ID.
// Sessions past their expiry are reported as not found.
func (idx *MemoryIndex) GetSession(_ context.Context, id string) (*domain.Session, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	session, ok := idx.sessions[id]
	if !ok || session.IsExpired(idx.now()) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	cp := *session
	return &cp, nil
}

// DeleteSession removes a session from the index
func (idx *MemoryIndex) DeleteSession(_ context.Context, id string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.sessions, id)
	return nil
}

// GetAllSessions returns copies of every stored session, expired ones included
func (idx *MemoryIndex) GetAllSessions() []*domain.Session {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	sessions := make([]*domain.Session, 0, len(idx.sessions))
	for _, session := range idx.sessions {
		cp := *session
		sessions = append(sessions, &cp)
	}
	return sessions
}

// CountSessions returns the number of stored sessions
func (idx *MemoryIndex) CountSessions(_ context.Context) (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.sessions), nil
}
