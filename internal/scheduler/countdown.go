package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

// DefaultTickInterval is the cadence of the live countdown.
const DefaultTickInterval = time.Second

// ErrTickerRunning is returned by Start on a ticker that was not stopped.
var ErrTickerRunning = errors.New("countdown ticker already running")

// CountdownTicker drives a countdown: it samples the clock once per interval,
// publishes each sample and fires the expiry handler exactly once when the
// target is reached.
//
// Callbacks run on the ticker goroutine (or on the caller of Start and
// Retarget for the first sample of a run) and must not call Stop or Retarget.
type CountdownTicker struct {
	clock    Clock
	loc      *time.Location
	interval time.Duration
	logger   logger.Logger
	onSample func(domain.Sample)
	onExpire func(domain.ExpiryView)

	cfgMu sync.RWMutex
	cfg   domain.Configuration

	// mu serializes Start, Retarget and Stop
	mu  sync.Mutex
	ctx context.Context
	cur *run
}

// run is one armed cadence towards a fixed target.
type run struct {
	target time.Time
	valid  bool
	stop   chan struct{}
	done   chan struct{}
}

// NewCountdownTicker creates a stopped ticker.
// A nil clock uses the system clock and a nil location the local zone.
func NewCountdownTicker(
	clock Clock,
	loc *time.Location,
	interval time.Duration,
	log logger.Logger,
	onSample func(domain.Sample),
	onExpire func(domain.ExpiryView),
) *CountdownTicker {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	return &CountdownTicker{
		clock:    clock,
		loc:      loc,
		interval: interval,
		logger:   log,
		onSample: onSample,
		onExpire: onExpire,
	}
}

// Start publishes a first sample synchronously, then arms the cadence unless
// the target has already passed.
func (t *CountdownTicker) Start(ctx context.Context, cfg domain.Configuration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cur != nil {
		return ErrTickerRunning
	}

	t.setConfig(cfg)
	t.ctx = ctx
	t.startLocked()
	return nil
}

// Retarget swaps the configuration of a running ticker.
// When the target instant changes the pending cadence is cancelled and a new
// run starts with an immediate sample; otherwise only the expiry presentation
// is updated and no sample is published.
func (t *CountdownTicker) Retarget(cfg domain.Configuration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.setConfig(cfg)
	if t.cur == nil {
		return
	}

	target, ok := cfg.Target(t.loc)
	if ok == t.cur.valid && target.Equal(t.cur.target) {
		return
	}

	t.stopLocked()
	t.startLocked()
}

// Stop cancels the cadence. Once it returns no sample or expiry callback
// fires any more.
func (t *CountdownTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
}

// Done is closed when the current run ends, by expiry, Stop or context
// cancellation. A ticker that is not started reports a closed channel.
func (t *CountdownTicker) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cur == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return t.cur.done
}

func (t *CountdownTicker) startLocked() {
	target, ok := t.config().Target(t.loc)
	r := &run{
		target: target,
		valid:  ok,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	t.cur = r

	if t.tick(r) {
		close(r.done)
		return
	}

	ticker := t.clock.NewTicker(t.interval)
	go t.loop(t.ctx, r, ticker)
}

func (t *CountdownTicker) stopLocked() {
	if t.cur == nil {
		return
	}
	close(t.cur.stop)
	<-t.cur.done
	t.cur = nil
}

func (t *CountdownTicker) loop(ctx context.Context, r *run, ticker Ticker) {
	defer close(r.done)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C():
			// a stop racing with a pending tick wins
			select {
			case <-r.stop:
				return
			default:
			}
			if t.tick(r) {
				return
			}
		}
	}
}

// tick publishes one sample and reports whether the run has expired.
func (t *CountdownTicker) tick(r *run) bool {
	sample := domain.ExpiredSample
	if r.valid {
		sample = domain.Derive(r.target, t.clock.Now())
	}

	if t.onSample != nil {
		t.onSample(sample)
	}
	if !sample.Expired {
		return false
	}

	view := domain.PresentConfig(t.config())
	if t.logger != nil {
		t.logger.Debug("countdown expired",
			logger.String("action", string(view.Kind)))
	}
	if t.onExpire != nil {
		t.onExpire(view)
	}
	return true
}

func (t *CountdownTicker) config() domain.Configuration {
	t.cfgMu.RLock()
	defer t.cfgMu.RUnlock()
	return t.cfg
}

func (t *CountdownTicker) setConfig(cfg domain.Configuration) {
	t.cfgMu.Lock()
	defer t.cfgMu.Unlock()
	t.cfg = cfg
}
