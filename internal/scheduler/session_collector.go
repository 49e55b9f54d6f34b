package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/forge/internal/index"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

// DefaultCollectInterval is how often expired in-memory sessions are purged
const DefaultCollectInterval = 5 * time.Minute

// SessionCollector removes expired sessions from the memory index.
// Redis-backed sessions expire through their key TTL and need no collection.
type SessionCollector struct {
	index     *index.MemoryIndex
	logger    logger.Logger
	interval  time.Duration
	onCollect func(id string)
	now       func() time.Time
	stopCh    chan struct{}
}

// NewSessionCollector creates a new session collector.
// onCollect, when set, is called with the id of every removed session.
func NewSessionCollector(
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	onCollect func(id string),
) *SessionCollector {
	if interval <= 0 {
		interval = DefaultCollectInterval
	}

	return &SessionCollector{
		index:     idx,
		logger:    log,
		interval:  interval,
		onCollect: onCollect,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic collection process
func (sc *SessionCollector) Start(ctx context.Context) error {
	// Run immediately on start
	sc.Collect(ctx)

	// Start periodic collection
	ticker := time.NewTicker(sc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sc.Collect(ctx)
			case <-sc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector
func (sc *SessionCollector) Stop() {
	close(sc.stopCh)
}

// Collect removes every expired session and returns how many were removed
func (sc *SessionCollector) Collect(ctx context.Context) int {
	now := sc.now()
	deleted := 0

	for _, session := range sc.index.GetAllSessions() {
		if !session.IsExpired(now) {
			continue
		}

		if err := sc.index.DeleteSession(ctx, session.ID); err != nil {
			sc.logger.Warn("failed to delete expired session",
				logger.String("session_id", session.ID),
				logger.Error(err))
			continue
		}
		if sc.onCollect != nil {
			sc.onCollect(session.ID)
		}

		sc.logger.Debug("collected expired session",
			logger.String("session_id", session.ID),
			logger.String("idle_for", now.Sub(session.UpdatedAt).String()))

		deleted++
	}

	if deleted > 0 {
		sc.logger.Info("session collection completed",
			logger.Int("sessions_deleted", deleted))
	} else {
		sc.logger.Debug("no sessions to collect")
	}

	return deleted
}
