// Package session manages editing sessions: one Configuration being designed,
// edited through patches and watched by live previews.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

// DefaultTTL is the idle lifetime of a session.
const DefaultTTL = 2 * time.Hour

// Store persists sessions. Unknown or expired ids return
// domain.ErrSessionNotFound.
type Store interface {
	SaveSession(ctx context.Context, s *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// PresetLookup resolves preset names.
type PresetLookup interface {
	GetPreset(name string) (*domain.Preset, bool)
	GetAllPresets() []*domain.Preset
}

// CreateRequest describes a new session. Both fields are optional: the
// configuration defaults to domain.Default() and the preset is laid over it.
type CreateRequest struct {
	Preset string                `json:"preset,omitempty"`
	Config *domain.Configuration `json:"config,omitempty"`
}

// UpdateRequest is one edit. The preset, when set, is applied before the patch.
type UpdateRequest struct {
	Preset string       `json:"preset,omitempty"`
	Patch  domain.Patch `json:"patch"`
}

// Service is the editing-session service.
type Service struct {
	store   Store
	presets PresetLookup
	logger  logger.Logger
	ttl     time.Duration
	now     func() time.Time
	newID   func() string

	// editMu serializes read-modify-write cycles
	editMu sync.Mutex

	subMu sync.Mutex
	subs  map[string]map[*Subscription]struct{}
}

// NewService creates a session service. ttl <= 0 uses DefaultTTL.
func NewService(store Store, presets PresetLookup, log logger.Logger, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		store:   store,
		presets: presets,
		logger:  log,
		ttl:     ttl,
		now:     time.Now,
		newID:   uuid.NewString,
		subs:    make(map[string]map[*Subscription]struct{}),
	}
}

// Create starts a new session.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Session, error) {
	cfg := domain.Default()
	if req.Config != nil {
		cfg = *req.Config
	}

	cfg, err := s.applyPreset(cfg, req.Preset)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	sess := &domain.Session{
		ID:        s.newID(),
		Config:    cfg,
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.SaveSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Debug("session created",
		logger.String("session_id", sess.ID),
		logger.String("layout", string(cfg.Layout)))
	return sess, nil
}

// Get returns the session called id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.store.GetSession(ctx, id)
}

// Update applies one edit and publishes the new configuration to every
// subscriber. The stored configuration is replaced, never mutated.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*domain.Session, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := s.applyPreset(sess.Config, req.Preset)
	if err != nil {
		return nil, err
	}
	next = req.Patch.Apply(next).Normalize()
	if err := next.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	updated := *sess
	updated.Config = next
	updated.Revision++
	updated.UpdatedAt = now
	updated.ExpiresAt = now.Add(s.ttl)

	if err := s.store.SaveSession(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if req.Patch.TouchesTarget() {
		s.logger.Debug("session retargeted",
			logger.String("session_id", id),
			logger.String("target", next.TargetDate+" "+next.TargetTime))
	}

	s.publish(id, updated.Config)
	return &updated, nil
}

// Delete removes a session and closes its subscriptions. It waits for an
// edit in progress, so a deleted session is never saved again.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	if _, err := s.store.GetSession(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.Forget(id)
	return nil
}

// Discard ends a session after a successful export. A session that is
// already gone is not an error.
func (s *Service) Discard(ctx context.Context, id string) error {
	err := s.Delete(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	if err == nil {
		s.logger.Debug("session discarded after export",
			logger.String("session_id", id))
	}
	return err
}

// Forget closes every subscription of id without touching the store.
func (s *Service) Forget(id string) {
	s.subMu.Lock()
	subs := s.subs[id]
	delete(s.subs, id)
	s.subMu.Unlock()

	for sub := range subs {
		sub.close()
	}
}

func (s *Service) applyPreset(cfg domain.Configuration, name string) (domain.Configuration, error) {
	if name == "" {
		return cfg, nil
	}
	if s.presets == nil {
		return cfg, domain.PresetNotFound(name, nil)
	}
	preset, ok := s.presets.GetPreset(name)
	if !ok {
		return cfg, domain.PresetNotFound(name, s.presets.GetAllPresets())
	}
	return preset.Apply(cfg), nil
}
