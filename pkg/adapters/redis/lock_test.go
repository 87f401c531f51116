package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/aretw0/wayfinder/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_LockUnlock(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.NewFromClient(backend.NewClient(&backend.Options{Addr: mr.Addr()}))
	var locker ports.DistributedLocker = store.Locker()

	ctx := context.Background()
	unlock, err := locker.Lock(ctx, "refresh", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("wayfinder:config:lock:refresh"))

	// A second holder waits until the context gives up.
	waitCtx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "refresh", time.Minute)
	assert.True(t, errors.Is(err, redis.ErrLockAcquire))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("wayfinder:config:lock:refresh"))

	unlock, err = locker.Lock(ctx, "refresh", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestLocker_UnlockKeepsForeignLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	locker := redis.NewLocker(client, "test:")

	ctx := context.Background()
	unlock, err := locker.Lock(ctx, "k", time.Second)
	require.NoError(t, err)

	// The lock expired and someone else took it.
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("test:lock:k", "other"))

	require.NoError(t, unlock(ctx))
	got, err := mr.Get("test:lock:k")
	require.NoError(t, err)
	assert.Equal(t, "other", got)
}
