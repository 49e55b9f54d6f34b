package handlers

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/index"
	"github.com/MrSnakeDoc/forge/internal/logger"
	"github.com/MrSnakeDoc/forge/internal/scheduler"
	"github.com/MrSnakeDoc/forge/internal/session"
)

func streamDeps(idx *index.MemoryIndex) deps.Deps {
	log := logger.Nop()
	return deps.Deps{
		Logger:       log,
		MemoryIndex:  idx,
		Sessions:     session.NewService(idx, idx, log, time.Hour),
		Clock:        scheduler.SystemClock{},
		Location:     time.UTC,
		TickInterval: time.Hour,
	}
}

func configAt(date string) domain.Configuration {
	cfg := domain.Default()
	cfg.TargetDate = date
	return cfg
}

func startLive(t *testing.T, cfg domain.Configuration) *liveCountdown {
	t.Helper()
	live := newLiveCountdown(streamDeps(index.NewMemoryIndex()), logger.Nop())
	require.NoError(t, live.ticker.Start(context.Background(), cfg))
	t.Cleanup(live.ticker.Stop)
	return live
}

func TestLiveCountdownRetargetDropsQueuedExpiry(t *testing.T) {
	live := startLive(t, configAt("2020-01-01"))
	require.Len(t, live.samples, 1)
	require.Len(t, live.expiries, 1)

	latest, view := live.retarget(configAt("2099-01-01"))

	require.NotNil(t, latest)
	assert.False(t, latest.Expired)
	assert.Nil(t, view)
	assert.Empty(t, live.samples)
	assert.Empty(t, live.expiries)
}

func TestLiveCountdownRetargetIntoThePast(t *testing.T) {
	live := startLive(t, configAt("2099-01-01"))

	cfg := configAt("2020-01-01")
	cfg.Expiry.Message = "Gone"
	latest, view := live.retarget(cfg)

	require.NotNil(t, latest)
	assert.True(t, latest.Expired)
	require.NotNil(t, view)
	assert.Equal(t, "Gone", view.Message)
}

func TestLiveCountdownRetargetKeepsPendingExpiryWithNewMessage(t *testing.T) {
	live := startLive(t, configAt("2020-01-01"))

	cfg := configAt("2020-01-01")
	cfg.Expiry.Message = "Sold out"
	latest, view := live.retarget(cfg)

	require.NotNil(t, latest)
	assert.True(t, latest.Expired)
	require.NotNil(t, view)
	assert.Equal(t, "Sold out", view.Message)
}

func TestStreamClosesWhenSessionVanishes(t *testing.T) {
	prev := streamKeepAlive
	streamKeepAlive = 10 * time.Millisecond
	t.Cleanup(func() { streamKeepAlive = prev })

	idx := index.NewMemoryIndex()
	d := streamDeps(idx)
	cfg := configAt("2099-01-01")
	sess, err := d.Sessions.Create(context.Background(), session.CreateRequest{Config: &cfg})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/api/sessions/{id}/stream", Stream(d))
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/sessions/" + sess.ID + "/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	names := make(chan string, 64)
	go func() {
		defer close(names)
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			if name, ok := strings.CutPrefix(sc.Text(), "event: "); ok {
				names <- name
			}
		}
	}()

	next := func() string {
		t.Helper()
		select {
		case name := <-names:
			return name
		case <-time.After(2 * time.Second):
			t.Fatal("no event received")
			return ""
		}
	}

	assert.Equal(t, "config", next())
	assert.Equal(t, "sample", next())

	// the store forgets the session on its own, as a redis key TTL does
	require.NoError(t, idx.DeleteSession(context.Background(), sess.ID))

	assert.Equal(t, "closed", next())
	assert.Zero(t, d.Sessions.Subscribers(sess.ID))
}
