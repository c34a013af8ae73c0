package service

import (
	"context"
	"testing"
	"time"

	"librarylens/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisTokenStore_StoreExistsRevoke(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	store := NewRedisTokenStore(client)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, jwt.AccessToken, 1, "a1", time.Minute))
	require.NoError(t, store.Store(ctx, jwt.RefreshToken, 1, "r1", time.Hour))
	require.NoError(t, store.Store(ctx, jwt.AccessToken, 2, "a2", time.Minute))

	assert.True(t, mr.Exists("access_token:1:a1"))
	assert.Equal(t, time.Minute, mr.TTL("access_token:1:a1"))

	ok, err := store.Exists(ctx, jwt.AccessToken, 1, "a1")
	require.NoError(t, err)
	assert.True(t, ok)

	// Same id under another type or user is a different token
	ok, err = store.Exists(ctx, jwt.RefreshToken, 1, "a1")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = store.Exists(ctx, jwt.AccessToken, 2, "a1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Revoke finds the key without knowing the user
	require.NoError(t, store.Revoke(ctx, jwt.AccessToken, "a1"))
	ok, err = store.Exists(ctx, jwt.AccessToken, 1, "a1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Exists(ctx, jwt.RefreshToken, 1, "r1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.Exists(ctx, jwt.AccessToken, 2, "a2")
	require.NoError(t, err)
	assert.True(t, ok)

	// Unknown ids are a no-op
	require.NoError(t, store.Revoke(ctx, jwt.RefreshToken, "missing"))
}

func TestRedisTokenStore_Expiry(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	store := NewRedisTokenStore(client)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, jwt.AccessToken, 1, "a1", time.Minute))
	mr.FastForward(time.Minute + time.Second)

	ok, err := store.Exists(ctx, jwt.AccessToken, 1, "a1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisTokenStore_RevokeAllIsolatesUsers(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	store := NewRedisTokenStore(client)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, jwt.AccessToken, 1, "a1", time.Minute))
	require.NoError(t, store.Store(ctx, jwt.AccessToken, 1, "a1b", time.Minute))
	require.NoError(t, store.Store(ctx, jwt.RefreshToken, 1, "r1", time.Hour))
	require.NoError(t, store.Store(ctx, jwt.AccessToken, 11, "a11", time.Minute))
	require.NoError(t, store.Store(ctx, jwt.RefreshToken, 11, "r11", time.Hour))

	require.NoError(t, store.RevokeAll(ctx, 1))

	for _, key := range []string{"access_token:1:a1", "access_token:1:a1b", "refresh_token:1:r1"} {
		assert.False(t, mr.Exists(key), key)
	}
	for _, key := range []string{"access_token:11:a11", "refresh_token:11:r11"} {
		assert.True(t, mr.Exists(key), key)
	}

	// Nothing left to revoke
	require.NoError(t, store.RevokeAll(ctx, 1))
}

func TestRedisTokenStore_SurfacesConnectionErrors(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	store := NewRedisTokenStore(client)
	mr.Close()

	_, err := store.Exists(context.Background(), jwt.AccessToken, 1, "a1")
	assert.Error(t, err)
	assert.Error(t, store.RevokeAll(context.Background(), 1))
}

func TestRateLimiter_FixedWindow(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	limiter := NewRateLimiter(client, 3, time.Minute)
	fixed := time.Date(2026, 1, 1, 12, 0, 10, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "login", "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "hit %d", i+1)
	}

	ok, err := limiter.Allow(ctx, "login", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Other clients and scopes keep their own counters
	ok, err = limiter.Allow(ctx, "login", "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = limiter.Allow(ctx, "register", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	key := "ratelimit:login:10.0.0.1:20260101T120000"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	// Once the counter expires the same window admits hits again
	mr.FastForward(time.Minute)
	ok, err = limiter.Allow(ctx, "login", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiter_NextWindowStartsFresh(t *testing.T) {
	t.Parallel()

	_, client := newRedis(t)
	limiter := NewRateLimiter(client, 1, time.Minute)
	current := time.Date(2026, 1, 1, 12, 0, 59, 0, time.UTC)
	limiter.now = func() time.Time { return current }
	ctx := context.Background()

	ok, err := limiter.Allow(ctx, "login", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = limiter.Allow(ctx, "login", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	current = current.Add(2 * time.Second)
	ok, err = limiter.Allow(ctx, "login", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiter_SurfacesConnectionErrors(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	limiter := NewRateLimiter(client, 3, time.Minute)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "login", "10.0.0.1")
	assert.Error(t, err)
}
