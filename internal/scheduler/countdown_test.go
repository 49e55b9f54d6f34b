package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	ft := &fakeTicker{ch: make(chan time.Time)}
	c.tickers = append(c.tickers, ft)
	return ft
}

func (c *fakeClock) advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

func (c *fakeClock) tickerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

func (c *fakeClock) ticker(i int) *fakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickers[i]
}

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type recorder struct {
	samples  chan domain.Sample
	expiries chan domain.ExpiryView
}

func newRecorder() *recorder {
	return &recorder{
		samples:  make(chan domain.Sample, 64),
		expiries: make(chan domain.ExpiryView, 8),
	}
}

func (r *recorder) nextSample(t *testing.T) domain.Sample {
	t.Helper()
	select {
	case s := <-r.samples:
		return s
	case <-time.After(time.Second):
		t.Fatal("no sample published")
		return domain.Sample{}
	}
}

func (r *recorder) nextExpiry(t *testing.T) domain.ExpiryView {
	t.Helper()
	select {
	case v := <-r.expiries:
		return v
	case <-time.After(time.Second):
		t.Fatal("expiry handler not called")
		return domain.ExpiryView{}
	}
}

// newTestTicker targets 2025-12-31 23:59 UTC, three seconds after the clock.
func newTestTicker(clock *fakeClock, rec *recorder) *CountdownTicker {
	return NewCountdownTicker(
		clock,
		time.UTC,
		DefaultTickInterval,
		logger.Nop(),
		func(s domain.Sample) { rec.samples <- s },
		func(v domain.ExpiryView) { rec.expiries <- v },
	)
}

func startClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, time.December, 31, 23, 58, 57, 0, time.UTC)}
}

func fire(t *testing.T, clock *fakeClock, ft *fakeTicker) {
	t.Helper()
	now := clock.advance(time.Second)
	select {
	case ft.ch <- now:
	case <-time.After(time.Second):
		t.Fatal("ticker loop is not receiving")
	}
}

func TestCountdownTicker_CountsDownAndExpiresOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := startClock()
	rec := newRecorder()
	tk := newTestTicker(clock, rec)

	require.NoError(t, tk.Start(context.Background(), domain.Default()))

	// first sample is published before Start returns
	require.Len(t, rec.samples, 1)
	assert.Equal(t, domain.Remaining{Seconds: 3}, rec.nextSample(t).Remaining)

	require.Equal(t, 1, clock.tickerCount())
	ft := clock.ticker(0)

	fire(t, clock, ft)
	assert.Equal(t, domain.Remaining{Seconds: 2}, rec.nextSample(t).Remaining)
	fire(t, clock, ft)
	assert.Equal(t, domain.Remaining{Seconds: 1}, rec.nextSample(t).Remaining)
	fire(t, clock, ft)
	assert.True(t, rec.nextSample(t).Expired)

	view := rec.nextExpiry(t)
	assert.Equal(t, domain.ExpiryMessage, view.Kind)
	assert.Equal(t, "This offer has expired.", view.Message)

	<-tk.Done()
	assert.True(t, ft.isStopped())
	assert.Empty(t, rec.expiries)
	assert.Empty(t, rec.samples)

	tk.Stop()
}

func TestCountdownTicker_AlreadyExpiredRedirect(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &fakeClock{now: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	rec := newRecorder()
	tk := newTestTicker(clock, rec)

	cfg := domain.Default()
	cfg.Expiry.Action = domain.ActionRedirect
	cfg.Expiry.RedirectURL = "https://example.com/thanks"

	require.NoError(t, tk.Start(context.Background(), cfg))

	assert.True(t, rec.nextSample(t).Expired)
	assert.Equal(t, domain.ExpiryView{
		Kind:        domain.ExpiryRedirect,
		RedirectURL: "https://example.com/thanks",
		Navigate:    true,
	}, rec.nextExpiry(t))
	assert.Zero(t, clock.tickerCount(), "no cadence is armed for an expired target")

	<-tk.Done()
	tk.Stop()
	assert.Empty(t, rec.expiries)
}

func TestCountdownTicker_MalformedTargetIsExpired(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := startClock()
	rec := newRecorder()
	tk := newTestTicker(clock, rec)

	cfg := domain.Default()
	cfg.TargetDate = "31/12/2025"

	require.NoError(t, tk.Start(context.Background(), cfg))
	assert.True(t, rec.nextSample(t).Expired)
	assert.Equal(t, domain.ExpiryMessage, rec.nextExpiry(t).Kind)
	tk.Stop()
}

func TestCountdownTicker_StartTwice(t *testing.T) {
	defer goleak.VerifyNone(t)

	tk := newTestTicker(startClock(), newRecorder())
	require.NoError(t, tk.Start(context.Background(), domain.Default()))
	assert.ErrorIs(t, tk.Start(context.Background(), domain.Default()), ErrTickerRunning)

	tk.Stop()
	require.NoError(t, tk.Start(context.Background(), domain.Default()))
	tk.Stop()
}

func TestCountdownTicker_RetargetSameInstantKeepsCadence(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := startClock()
	rec := newRecorder()
	tk := newTestTicker(clock, rec)

	require.NoError(t, tk.Start(context.Background(), domain.Default()))
	rec.nextSample(t)

	cfg := domain.Default()
	cfg.Expiry.Message = "Too late!"
	cfg.Colors.Background = "#000000"
	tk.Retarget(cfg)

	assert.Empty(t, rec.samples)
	require.Equal(t, 1, clock.tickerCount())

	ft := clock.ticker(0)
	fire(t, clock, ft)
	fire(t, clock, ft)
	fire(t, clock, ft)
	for i := 0; i < 3; i++ {
		rec.nextSample(t)
	}
	assert.Equal(t, "Too late!", rec.nextExpiry(t).Message)

	tk.Stop()
}

func TestCountdownTicker_RetargetNewInstantRestarts(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := startClock()
	rec := newRecorder()
	tk := newTestTicker(clock, rec)

	require.NoError(t, tk.Start(context.Background(), domain.Default()))
	rec.nextSample(t)
	first := clock.ticker(0)

	cfg := domain.Default()
	cfg.TargetDate = "2026-01-01"
	cfg.TargetTime = "00:00"
	tk.Retarget(cfg)

	assert.True(t, first.isStopped(), "previous cadence is cancelled before Retarget returns")
	require.Len(t, rec.samples, 1)
	assert.Equal(t, domain.Remaining{Minutes: 1, Seconds: 3}, rec.nextSample(t).Remaining)

	require.Equal(t, 2, clock.tickerCount())
	fire(t, clock, clock.ticker(1))
	assert.Equal(t, domain.Remaining{Minutes: 1, Seconds: 2}, rec.nextSample(t).Remaining)

	tk.Stop()
	assert.True(t, clock.ticker(1).isStopped())
	assert.Empty(t, rec.expiries)
}

func TestCountdownTicker_RetargetAfterExpiryRearms(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &fakeClock{now: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	rec := newRecorder()
	tk := newTestTicker(clock, rec)

	require.NoError(t, tk.Start(context.Background(), domain.Default()))
	assert.True(t, rec.nextSample(t).Expired)
	rec.nextExpiry(t)

	cfg := domain.Default()
	cfg.TargetDate = "2026-01-02"
	tk.Retarget(cfg)

	s := rec.nextSample(t)
	assert.False(t, s.Expired)
	assert.Equal(t, domain.Remaining{Days: 1, Hours: 23, Minutes: 59}, s.Remaining)
	assert.Equal(t, 1, clock.tickerCount())

	tk.Stop()
}

func TestCountdownTicker_RetargetWhileStopped(t *testing.T) {
	clock := startClock()
	rec := newRecorder()
	tk := newTestTicker(clock, rec)

	tk.Retarget(domain.Default())
	assert.Empty(t, rec.samples)
	assert.Zero(t, clock.tickerCount())
}

func TestCountdownTicker_StopIsSynchronous(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := startClock()
	rec := newRecorder()
	tk := newTestTicker(clock, rec)

	require.NoError(t, tk.Start(context.Background(), domain.Default()))
	rec.nextSample(t)
	ft := clock.ticker(0)

	tk.Stop()
	assert.True(t, ft.isStopped())

	select {
	case ft.ch <- clock.advance(time.Second):
		t.Fatal("tick delivered after Stop")
	case <-time.After(20 * time.Millisecond):
	}
	assert.Empty(t, rec.samples)
	assert.Empty(t, rec.expiries)

	// stopping twice is a no-op
	tk.Stop()
}

func TestCountdownTicker_ContextCancelEndsRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	clock := startClock()
	rec := newRecorder()
	tk := newTestTicker(clock, rec)

	require.NoError(t, tk.Start(ctx, domain.Default()))
	done := tk.Done()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not end on context cancellation")
	}
	assert.True(t, clock.ticker(0).isStopped())
	assert.Empty(t, rec.expiries)
	tk.Stop()
}
