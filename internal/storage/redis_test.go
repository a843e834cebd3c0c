package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestScopeStore_RoundTrip(t *testing.T) {
	store := NewScopeStore(setupRedis(t))
	ctx := context.Background()

	loaded, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "", loaded)

	assert.NoError(t, store.Save(ctx, "Trattoria"))

	loaded, err = store.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Trattoria", loaded)

	assert.NoError(t, store.Clear(ctx))

	loaded, err = store.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "", loaded)
}

func TestTokenStore_IssueValidRevoke(t *testing.T) {
	store := NewTokenStore(setupRedis(t), time.Hour)
	ctx := context.Background()

	ok, err := store.Valid(ctx, "tok-1")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Issue(ctx, "tok-1"))

	ok, err = store.Valid(ctx, "tok-1")
	assert.NoError(t, err)
	assert.True(t, ok)

	current, err := store.Current(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "tok-1", current)

	assert.NoError(t, store.Revoke(ctx, "tok-1"))

	ok, err = store.Valid(ctx, "tok-1")
	assert.NoError(t, err)
	assert.False(t, ok)

	current, err = store.Current(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "", current)
}

func TestTokenStore_IssueReplacesCurrent(t *testing.T) {
	store := NewTokenStore(setupRedis(t), time.Hour)
	ctx := context.Background()

	assert.NoError(t, store.Issue(ctx, "tok-1"))
	assert.NoError(t, store.Issue(ctx, "tok-2"))

	current, err := store.Current(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "tok-2", current)

	// The older token stays valid until revoked or expired.
	ok, err := store.Valid(ctx, "tok-1")
	assert.NoError(t, err)
	assert.True(t, ok)
}
