package redis

import (
	"context"
	"testing"
	"time"

	"github.com/admin/web-apps/celestai/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSessionStore(client, "test", time.Hour).(*SessionStore), mr
}

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	state, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, state.HasUser())

	saved := &domain.DashboardState{
		User:          &domain.User{ID: "u1", Name: "John Doe"},
		PartnerID:     "u2",
		Compatibility: "Compatibility Report",
	}
	require.NoError(t, store.Save(ctx, "s1", saved))
	assert.True(t, mr.Exists("test:state:s1"))
	assert.Equal(t, time.Hour, mr.TTL("test:state:s1"))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, got.HasUser())
	assert.Equal(t, "John Doe", got.User.Name)
	assert.Equal(t, "u2", got.PartnerID)
	assert.Equal(t, "Compatibility Report", got.Compatibility)
}

func TestSessionStore_CorruptedStateIsError(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set("test:state:s1", "{not json"))

	_, err := store.Get(ctx, "s1")
	assert.Error(t, err)
}

func TestSessionStore_Lock(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	ok, err := store.TryLock(ctx, "s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.TryLock(ctx, "s1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	locked, err := store.IsLocked(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, locked)

	// истечение ttl снимает флаг
	mr.FastForward(2 * time.Minute)

	locked, err = store.IsLocked(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, locked)

	ok, err = store.TryLock(ctx, "s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Unlock(ctx, "s1"))

	locked, err = store.IsLocked(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	require.NoError(t, store.Save(ctx, "s1", &domain.DashboardState{Chart: "<svg/>"}))
	_, err := store.TryLock(ctx, "s1", time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "s1"))

	assert.False(t, mr.Exists("test:state:s1"))
	assert.False(t, mr.Exists("test:lock:s1"))
}

func TestSessionStore_Ping(t *testing.T) {
	store, _ := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
