package session

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-wizard/internal/booking"
	"booking-wizard/internal/calendar"
	"booking-wizard/internal/model"
	"booking-wizard/internal/wizard"
)

func sample(now time.Time) *Session {
	s := New(now)
	ev := model.SelectedEvent{Title: "Interviews", Duration: "30m"}
	s.Wizard = wizard.Snapshot{Step: wizard.StepCalendar, View: model.ViewWeekly, Event: &ev}
	s.Calendar = &calendar.State{Kind: model.ViewWeekly, Anchor: civil.DateOf(now)}
	s.Form.Set(booking.FieldName, "Jane")
	return s
}

func exercise(t *testing.T, store Store) {
	ctx := context.Background()
	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	s := sample(time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Wizard, got.Wizard)
	assert.Equal(t, "Jane", got.Form.Data.Name)
	assert.True(t, s.CreatedAt.Equal(got.CreatedAt))

	// callers do not share the stored copy
	got.Form.Set(booking.FieldName, "Changed")
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", again.Form.Data.Name)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exercise(t, NewMemoryStore(time.Minute))
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2026, time.October, 21, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(30 * time.Minute)
	m.now = func() time.Time { return now }

	a, b := sample(now), sample(now)
	require.NoError(t, m.Save(context.Background(), a))
	now = now.Add(20 * time.Minute)
	require.NoError(t, m.Save(context.Background(), b))

	now = now.Add(15 * time.Minute)
	_, err := m.Get(context.Background(), a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(context.Background(), b.ID)
	assert.NoError(t, err)

	now = now.Add(time.Hour)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 0, m.Len())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, 30*time.Minute)
	exercise(t, store)

	s := sample(time.Now())
	require.NoError(t, store.Save(context.Background(), s))
	assert.Equal(t, 30*time.Minute, mr.TTL(keyPrefix+s.ID))

	mr.FastForward(31 * time.Minute)
	_, err := store.Get(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreCorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, mr.Set(keyPrefix+"bad", "{not json"))
	_, err := NewRedisStore(client, time.Minute).Get(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
