package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/storage"
)

func newTestStorage(t *testing.T) (*SessionStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStorage(client), mr
}

func TestSessionStorage_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStorage(t)

	session := models.Session{
		ID:                   "sid",
		Generation:           1,
		UserID:               "1",
		AccessToken:          "a1",
		RefreshToken:         "r1",
		AccessTokenExpiresAt: 1700000000000,
	}
	require.NoError(t, s.CreateSession(ctx, session, time.Hour))
	assert.True(t, mr.Exists("session:sid"))
	assert.Equal(t, time.Hour, mr.TTL("session:sid"))

	got, err := s.GetSession(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.RefreshToken)
	assert.Equal(t, int64(1700000000000), got.AccessTokenExpiresAt)

	require.NoError(t, s.DeleteSession(ctx, "sid"))
	_, err = s.GetSession(ctx, "sid")
	require.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestSessionStorage_Expires(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStorage(t)

	require.NoError(t, s.CreateSession(ctx, models.Session{ID: "sid", Generation: 1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := s.GetSession(ctx, "sid")
	require.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestSessionStorage_UpdateComparesGeneration(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStorage(t)

	require.NoError(t, s.CreateSession(ctx, models.Session{ID: "sid", Generation: 2, AccessToken: "a1"}, time.Hour))

	err := s.UpdateSession(ctx, models.Session{ID: "sid", Generation: 1, AccessToken: "stale"}, "", time.Hour)
	require.ErrorIs(t, err, storage.ErrStaleSession)

	require.NoError(t, s.UpdateSession(ctx, models.Session{ID: "sid", Generation: 2, AccessToken: "a2"}, "", time.Hour))
	got, err := s.GetSession(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "a2", got.AccessToken)

	err = s.UpdateSession(ctx, models.Session{ID: "missing", Generation: 1}, "", time.Hour)
	require.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestSessionStorage_UpdateComparesRefreshToken(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStorage(t)

	require.NoError(t, s.CreateSession(ctx, models.Session{ID: "sid", Generation: 1, AccessToken: "a1", RefreshToken: "r1"}, time.Hour))
	require.NoError(t, s.UpdateSession(ctx, models.Session{ID: "sid", Generation: 1, AccessToken: "a2", RefreshToken: "r2"}, "r1", time.Hour))

	late := models.Session{ID: "sid", Generation: 1, AccessToken: "a1", RefreshToken: "r1", Error: models.SessionErrorRefreshAccessToken}
	err := s.UpdateSession(ctx, late, "r1", time.Hour)
	require.ErrorIs(t, err, storage.ErrStaleSession)

	got, err := s.GetSession(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "r2", got.RefreshToken)
	assert.Empty(t, got.Error)
}

func TestSessionStorage_RefreshLock(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStorage(t)

	ok, err := s.AcquireRefreshLock(ctx, "sid", "owner-a", 15*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.AcquireRefreshLock(ctx, "sid", "owner-b", 15*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	// Only the owner can release it.
	require.NoError(t, s.ReleaseRefreshLock(ctx, "sid", "owner-b"))
	assert.True(t, mr.Exists("session:sid:refresh-lock"))

	require.NoError(t, s.ReleaseRefreshLock(ctx, "sid", "owner-a"))
	ok, err = s.AcquireRefreshLock(ctx, "sid", "owner-b", 15*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	// An abandoned lock expires on its own.
	mr.FastForward(16 * time.Second)
	ok, err = s.AcquireRefreshLock(ctx, "sid", "owner-c", 15*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.DeleteSession(ctx, "sid"))
	assert.False(t, mr.Exists("session:sid:refresh-lock"))
}

func TestSessionStorage_ReleaseAfterExpiryKeepsNewOwner(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStorage(t)

	ok, err := s.AcquireRefreshLock(ctx, "sid", "slow", 15*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(16 * time.Second)
	ok, err = s.AcquireRefreshLock(ctx, "sid", "next", 15*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// The slow refresher finishes after its lock expired.
	require.NoError(t, s.ReleaseRefreshLock(ctx, "sid", "slow"))

	owner, err := mr.Get("session:sid:refresh-lock")
	require.NoError(t, err)
	assert.Equal(t, "next", owner)
}
