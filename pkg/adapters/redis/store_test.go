package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisStore_Contract(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client)
	ports.RunConfigCacheContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	key := "https://example.com/config.json"

	err = store.Set(ctx, key, []byte(`{"rules":[]}`))
	assert.NoError(t, err)

	keys, err := store.Keys(ctx)
	assert.NoError(t, err)
	assert.Contains(t, keys, key)

	mr.FastForward(2 * time.Second)

	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	// The index is pruned against wall-clock time, not miniredis time.
	time.Sleep(1200 * time.Millisecond)

	keys, err = store.Keys(ctx)
	assert.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err = store.Set(ctx, "main", []byte("{}"))
	assert.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:main"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	assert.NoError(t, store.Delete(ctx, "main"))
	assert.False(t, mr.Exists("custom:app:main"))
}
