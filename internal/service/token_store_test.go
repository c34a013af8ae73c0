package service

import (
	"context"
	"testing"
	"time"

	"librarylens/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStore_StoreAndRevoke(t *testing.T) {
	t.Parallel()

	store := NewMemoryTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, jwt.AccessToken, 1, "a1", time.Minute))
	require.NoError(t, store.Store(ctx, jwt.RefreshToken, 1, "r1", time.Minute))

	ok, err := store.Exists(ctx, jwt.AccessToken, 1, "a1")
	require.NoError(t, err)
	assert.True(t, ok)

	// Same id under a different type or user is a different token
	ok, err = store.Exists(ctx, jwt.RefreshToken, 1, "a1")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = store.Exists(ctx, jwt.AccessToken, 2, "a1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Revoke(ctx, jwt.AccessToken, "a1"))
	ok, err = store.Exists(ctx, jwt.AccessToken, 1, "a1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Exists(ctx, jwt.RefreshToken, 1, "r1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryTokenStore_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := &memoryTokenStore{
		tokens: make(map[string]time.Time),
		now:    func() time.Time { return now },
	}
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, jwt.AccessToken, 1, "a1", time.Minute))

	now = now.Add(59 * time.Second)
	ok, err := store.Exists(ctx, jwt.AccessToken, 1, "a1")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Second)
	ok, err = store.Exists(ctx, jwt.AccessToken, 1, "a1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, store.tokens)
}

func TestMemoryTokenStore_RevokeAllOnlyTouchesOneUser(t *testing.T) {
	t.Parallel()

	store := NewMemoryTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, jwt.AccessToken, 1, "a1", time.Minute))
	require.NoError(t, store.Store(ctx, jwt.RefreshToken, 1, "r1", time.Minute))
	require.NoError(t, store.Store(ctx, jwt.AccessToken, 11, "a11", time.Minute))

	require.NoError(t, store.RevokeAll(ctx, 1))

	ok, _ := store.Exists(ctx, jwt.AccessToken, 1, "a1")
	assert.False(t, ok)
	ok, _ = store.Exists(ctx, jwt.RefreshToken, 1, "r1")
	assert.False(t, ok)
	ok, _ = store.Exists(ctx, jwt.AccessToken, 11, "a11")
	assert.True(t, ok)
}
