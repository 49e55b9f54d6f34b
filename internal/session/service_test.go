package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/index"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

func newTestService(t *testing.T) (*Service, *index.MemoryIndex) {
	t.Helper()
	idx := index.NewMemoryIndex()
	idx.UpdatePresets(domain.BuiltinPresets())

	svc := NewService(idx, idx, logger.Nop(), time.Hour)
	now := time.Now().Truncate(time.Second)
	svc.now = func() time.Time { return now }
	svc.newID = func() string { return "sess-1" }
	return svc, idx
}

func ptr[T any](v T) *T { return &v }

func TestCreateDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	sess, err := svc.Create(context.Background(), CreateRequest{})
	require.NoError(t, err)

	assert.Equal(t, "sess-1", sess.ID)
	assert.Equal(t, 1, sess.Revision)
	assert.Equal(t, domain.Default(), sess.Config)
	assert.Equal(t, sess.CreatedAt.Add(time.Hour), sess.ExpiresAt)
}

func TestCreateWithPresetAndConfig(t *testing.T) {
	svc, _ := newTestService(t)

	cfg := domain.Configuration{TargetDate: "2026-02-14", TargetTime: "20:00", TitleText: "Valentine"}
	sess, err := svc.Create(context.Background(), CreateRequest{Preset: "minimal", Config: &cfg})
	require.NoError(t, err)

	assert.Equal(t, domain.LayoutBar, sess.Config.Layout)
	assert.Equal(t, "#f8fafc", sess.Config.Colors.Background)
	assert.Equal(t, "Valentine", sess.Config.TitleText)
	assert.Equal(t, "2026-02-14", sess.Config.TargetDate)
	assert.Equal(t, "smart-countdown-timer", sess.Config.Identity.Slug, "normalized")
}

func TestCreateRejectsUnknownPreset(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateRequest{Preset: "neon"})
	assert.ErrorIs(t, err, domain.ErrPresetNotFound)

	_, err = svc.Create(context.Background(), CreateRequest{Preset: "grad"})
	assert.ErrorIs(t, err, domain.ErrPresetNotFound)
	assert.ErrorContains(t, err, `did you mean "gradient"?`)
}

func TestCreateRejectsInvalidConfig(t *testing.T) {
	svc, _ := newTestService(t)

	cfg := domain.Default()
	cfg.Layout = "carousel"
	_, err := svc.Create(context.Background(), CreateRequest{Config: &cfg})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "layout", verr.Fields[0].Field)
}

func TestUpdateProducesNewRevision(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateRequest{})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateRequest{Patch: domain.Patch{
		Layout: ptr(domain.LayoutBox),
		Expiry: &domain.ExpiryPatch{Message: ptr("Closed")},
	}})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Revision)
	assert.Equal(t, domain.LayoutBox, updated.Config.Layout)
	assert.Equal(t, "Closed", updated.Config.Expiry.Message)
	assert.Equal(t, domain.LayoutBanner, created.Config.Layout, "previous value untouched")

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Config, stored.Config)
}

func TestUpdateInvalidLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateRequest{})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, UpdateRequest{Patch: domain.Patch{
		Colors: &domain.ColorsPatch{Text: ptr("not a color!")},
	}})
	require.Error(t, err)

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Revision)
	assert.Equal(t, created.Config, stored.Config)
}

func TestUpdateUnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), "missing", UpdateRequest{})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSubscribeReceivesLatestConfig(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateRequest{})
	require.NoError(t, err)

	sub := svc.Subscribe(created.ID)
	defer sub.Close()

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.Update(ctx, created.ID, UpdateRequest{Patch: domain.Patch{TitleText: ptr(title)}})
		require.NoError(t, err)
	}

	select {
	case cfg := <-sub.Updates():
		assert.Equal(t, "three", cfg.TitleText)
	default:
		t.Fatal("no update delivered")
	}
	assert.Empty(t, sub.Updates())
}

func TestDeleteClosesSubscriptions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateRequest{})
	require.NoError(t, err)
	sub := svc.Subscribe(created.ID)

	require.NoError(t, svc.Delete(ctx, created.ID))

	select {
	case <-sub.Done():
	default:
		t.Fatal("subscription still open after delete")
	}
	assert.Zero(t, svc.Subscribers(created.ID))
	sub.Close()

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrSessionNotFound)
}

func TestDiscardIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateRequest{})
	require.NoError(t, err)

	assert.NoError(t, svc.Discard(ctx, created.ID))
	assert.NoError(t, svc.Discard(ctx, created.ID))
}

func TestCloseRemovesSubscription(t *testing.T) {
	svc, _ := newTestService(t)

	sub := svc.Subscribe("x")
	other := svc.Subscribe("x")
	assert.Equal(t, 2, svc.Subscribers("x"))

	sub.Close()
	sub.Close()
	assert.Equal(t, 1, svc.Subscribers("x"))

	svc.Forget("x")
	<-other.Done()
	assert.Zero(t, svc.Subscribers("x"))
}

// pausingStore blocks the first save of revision 2 until release is closed.
type pausingStore struct {
	*index.MemoryIndex
	paused  chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *pausingStore) SaveSession(ctx context.Context, s *domain.Session) error {
	if s.Revision == 2 {
		p.once.Do(func() {
			close(p.paused)
			<-p.release
		})
	}
	return p.MemoryIndex.SaveSession(ctx, s)
}

func TestDiscardDuringUpdateStaysDiscarded(t *testing.T) {
	ctx := context.Background()
	idx := index.NewMemoryIndex()
	store := &pausingStore{MemoryIndex: idx, paused: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(store, idx, logger.Nop(), time.Hour)

	created, err := svc.Create(ctx, CreateRequest{})
	require.NoError(t, err)

	updated := make(chan error, 1)
	go func() {
		_, err := svc.Update(ctx, created.ID, UpdateRequest{Patch: domain.Patch{TitleText: ptr("edited")}})
		updated <- err
	}()
	<-store.paused

	discarded := make(chan error, 1)
	go func() { discarded <- svc.Discard(ctx, created.ID) }()

	select {
	case <-discarded:
		t.Fatal("discard did not wait for the edit in progress")
	case <-time.After(20 * time.Millisecond):
	}

	close(store.release)
	require.NoError(t, <-updated)
	require.NoError(t, <-discarded)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
