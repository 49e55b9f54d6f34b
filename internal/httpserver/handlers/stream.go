package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/forge/internal/artifact"
	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/logger"
	"github.com/MrSnakeDoc/forge/internal/scheduler"
)

// streamKeepAlive is the interval of comment lines keeping idle proxies open.
// Each keep-alive also checks that the session still exists.
var streamKeepAlive = 15 * time.Second

// Stream event names.
const (
	eventConfig  = "config"
	eventSample  = "sample"
	eventExpired = "expired"
	eventClosed  = "closed"
)

type sampleEvent struct {
	Sample domain.Sample `json:"sample"`
	Markup string        `json:"markup"`
}

type configEvent struct {
	Config domain.Configuration `json:"config"`
}

// liveCountdown drives the ticker of one stream. Its callbacks queue samples
// and expiry views without ever blocking the ticker goroutine.
type liveCountdown struct {
	ticker   *scheduler.CountdownTicker
	samples  chan domain.Sample
	expiries chan domain.ExpiryView
}

func newLiveCountdown(d deps.Deps, log logger.Logger) *liveCountdown {
	lc := &liveCountdown{
		samples:  make(chan domain.Sample, 8),
		expiries: make(chan domain.ExpiryView, 1),
	}
	lc.ticker = scheduler.NewCountdownTicker(
		d.Clock,
		d.Loc(),
		d.TickInterval,
		log,
		func(s domain.Sample) {
			select {
			case lc.samples <- s:
			default:
			}
		},
		func(v domain.ExpiryView) {
			select {
			case <-lc.expiries:
			default:
			}
			lc.expiries <- v
		},
	)
	return lc
}

// retarget switches the countdown to cfg and returns what the display shows
// next: the newest queued sample and, when the countdown is over, the expiry
// view of cfg. Nothing queued before the switch is delivered afterwards.
func (lc *liveCountdown) retarget(cfg domain.Configuration) (*domain.Sample, *domain.ExpiryView) {
	latest, expired := lc.drain(nil, false)
	lc.ticker.Retarget(cfg)
	latest, expired = lc.drain(latest, expired)

	if !expired || (latest != nil && !latest.Expired) {
		return latest, nil
	}
	view := domain.PresentConfig(cfg)
	return latest, &view
}

// drain empties both queues, keeping the newest sample and whether an
// expiry was pending.
func (lc *liveCountdown) drain(latest *domain.Sample, expired bool) (*domain.Sample, bool) {
	for {
		select {
		case s := <-lc.samples:
			latest = &s
		case <-lc.expiries:
			expired = true
		default:
			return latest, expired
		}
	}
}

// Stream is a server-sent event stream of the session's live countdown.
// It publishes one sample per tick, an expiry event when the target is
// reached and follows every edit of the session: a new target restarts the
// countdown immediately. The stream is closed once the session is deleted
// or has expired.
func Stream(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(r)

		// subscribe first: an edit landing before Get is still delivered
		sub := d.Sessions.Subscribe(id)
		defer sub.Close()

		sess, err := d.Sessions.Get(r.Context(), id)
		if err != nil {
			writeError(w, d, err)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, d, fmt.Errorf("streaming unsupported"))
			return
		}

		log := d.Logger.With(logger.String("session_id", id))

		live := newLiveCountdown(d, log)
		defer live.ticker.Stop()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		cfg := sess.Config
		if err := writeEvent(w, eventConfig, configEvent{Config: cfg}); err != nil {
			return
		}
		if err := live.ticker.Start(ctx, cfg); err != nil {
			log.Error("failed to start countdown", logger.Error(err))
			return
		}
		flusher.Flush()

		log.Debug("preview stream opened")
		defer log.Debug("preview stream closed")

		keepAlive := time.NewTicker(streamKeepAlive)
		defer keepAlive.Stop()

		writeSample := func(s domain.Sample) error {
			markup, rerr := artifact.RenderFragment(cfg, s)
			if rerr != nil {
				log.Warn("failed to render preview", logger.Error(rerr))
			}
			return writeEvent(w, eventSample, sampleEvent{Sample: s, Markup: markup})
		}

		for {
			var err error
			select {
			case <-ctx.Done():
				return

			case <-sub.Done():
				_ = writeEvent(w, eventClosed, struct{}{})
				flusher.Flush()
				return

			case next := <-sub.Updates():
				cfg = next
				latest, view := live.retarget(cfg)
				err = writeEvent(w, eventConfig, configEvent{Config: cfg})
				if err == nil && latest != nil {
					err = writeSample(*latest)
				}
				if err == nil && view != nil {
					err = writeEvent(w, eventExpired, *view)
				}

			case s := <-live.samples:
				err = writeSample(s)

			case v := <-live.expiries:
				err = writeEvent(w, eventExpired, v)

			case <-keepAlive.C:
				// redis drops sessions through key expiry without notifying
				if _, gerr := d.Sessions.Get(ctx, id); errors.Is(gerr, domain.ErrSessionNotFound) {
					d.Sessions.Forget(id)
					continue
				}
				_, err = fmt.Fprint(w, ": keep-alive\n\n")
			}

			if err != nil {
				log.Debug("preview stream write failed", logger.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
