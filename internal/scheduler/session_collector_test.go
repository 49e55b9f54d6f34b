package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/index"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

func TestSessionCollector_Collect(t *testing.T) {
	ctx := context.Background()
	log := logger.Nop()
	memIndex := index.NewMemoryIndex()

	now := time.Now()
	sessions := []*domain.Session{
		{ID: "active", UpdatedAt: now, ExpiresAt: now.Add(time.Hour)},
		{ID: "no-expiry", UpdatedAt: now.Add(-48 * time.Hour)},
		{ID: "expired", UpdatedAt: now.Add(-3 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
	}
	for _, s := range sessions {
		if err := memIndex.SaveSession(ctx, s); err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}
	}

	var collected []string
	sc := NewSessionCollector(memIndex, log, time.Hour, func(id string) {
		collected = append(collected, id)
	})

	if n := sc.Collect(ctx); n != 1 {
		t.Errorf("Collect() = %d, want 1", n)
	}

	if n, _ := memIndex.CountSessions(ctx); n != 2 {
		t.Errorf("Expected 2 sessions after collection, got %d", n)
	}
	if _, err := memIndex.GetSession(ctx, "active"); err != nil {
		t.Error("Active session was incorrectly removed")
	}
	if _, err := memIndex.GetSession(ctx, "no-expiry"); err != nil {
		t.Error("Session without expiry was incorrectly removed")
	}
	if len(collected) != 1 || collected[0] != "expired" {
		t.Errorf("onCollect called with %v, want [expired]", collected)
	}
}

func TestSessionCollector_StartStop(t *testing.T) {
	ctx := context.Background()
	memIndex := index.NewMemoryIndex()
	_ = memIndex.SaveSession(ctx, &domain.Session{ID: "gone", ExpiresAt: time.Now().Add(-time.Second)})

	sc := NewSessionCollector(memIndex, logger.Nop(), time.Hour, nil)
	if err := sc.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer sc.Stop()

	// the first collection runs before Start returns
	if n, _ := memIndex.CountSessions(ctx); n != 0 {
		t.Errorf("Expected expired session to be collected on start, got %d sessions", n)
	}
}
