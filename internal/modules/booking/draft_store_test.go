package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonagenda/internal/domain"
)

func storedDraft() Draft {
	d := NewDraft("draft-1", testService(), at("2025-06-10T09:00:00").Truncate(time.Second))
	date := day("2025-06-11")
	slot := domain.MustTimeSlot("10:00")
	d.Date = &date
	d.Slot = &slot
	d.PaymentMethod = domain.PaymentDebit
	d.State = StatePaymentSelected
	return d
}

func TestMemoryDraftStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDraftStore()
	now := at("2025-06-10T09:00:00")
	s.now = func() time.Time { return now }

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	d := storedDraft()
	require.NoError(t, s.Save(ctx, d, time.Minute))

	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d, got)

	now = now.Add(time.Minute)
	_, err = s.Get(ctx, d.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	require.NoError(t, s.Save(ctx, d, 0))
	now = now.Add(24 * time.Hour)
	_, err = s.Get(ctx, d.ID)
	assert.NoError(t, err, "no ttl means no expiry")
}

func TestMemoryDraftStore_SweepsAbandonedDrafts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDraftStore()
	now := at("2025-06-10T09:00:00")
	s.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		d := storedDraft()
		d.ID = fmt.Sprintf("draft-%d", i)
		require.NoError(t, s.Save(ctx, d, time.Minute))
	}
	kept := storedDraft()
	kept.ID = "kept"
	require.NoError(t, s.Save(ctx, kept, 48*time.Hour))
	assert.Len(t, s.drafts, 1001)

	now = now.Add(24 * time.Hour)
	fresh := storedDraft()
	fresh.ID = "fresh"
	require.NoError(t, s.Save(ctx, fresh, time.Minute))

	assert.Len(t, s.drafts, 2)
	_, err := s.Get(ctx, "kept")
	assert.NoError(t, err)
}

func TestMemoryDraftStore_SweepIsThrottled(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDraftStore()
	now := at("2025-06-10T09:00:00")
	s.now = func() time.Time { return now }

	a := storedDraft()
	a.ID = "a"
	require.NoError(t, s.Save(ctx, a, time.Second))

	now = now.Add(2 * time.Second)
	b := storedDraft()
	b.ID = "b"
	require.NoError(t, s.Save(ctx, b, time.Hour))
	assert.Len(t, s.drafts, 2, "sweep waits for the interval")

	now = now.Add(memorySweepInterval)
	require.NoError(t, s.Save(ctx, b, time.Hour))
	assert.Len(t, s.drafts, 1)
}

func TestRedisDraftStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedisDraftStore(client)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	d := storedDraft()
	require.NoError(t, s.Save(ctx, d, time.Minute))
	assert.True(t, mr.Exists("booking:draft:draft-1"))

	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, d.State, got.State)
	assert.Equal(t, *d.Date, *got.Date)
	assert.Equal(t, *d.Slot, *got.Slot)
	assert.Equal(t, d.PaymentMethod, got.PaymentMethod)
	assert.True(t, d.Service.Price.Equal(got.Service.Price))
	assert.True(t, d.CreatedAt.Equal(got.CreatedAt))

	mr.FastForward(time.Minute + time.Second)
	_, err = s.Get(ctx, d.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	require.NoError(t, s.Save(ctx, d, time.Minute))
	mr.FastForward(30 * time.Second)
	require.NoError(t, s.Save(ctx, d, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("booking:draft:draft-1"), "save refreshes the ttl")
}

func TestRedisDraftStore_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	_, err := NewRedisDraftStore(client).Get(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDraftNotFound)
}
