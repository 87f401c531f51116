package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunConfigCacheContract runs a suite of tests to verify that a ConfigCache implementation
// adheres to the defined interface contract.
func RunConfigCacheContract(t *testing.T, cache ConfigCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Set and Get", func(t *testing.T) {
		doc := []byte(`{"settings":{},"rules":[]}`)

		require.NoError(t, cache.Set(ctx, key, doc), "Set should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, doc, got)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, []byte("first")))
		require.NoError(t, cache.Set(ctx, key, []byte("second")))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), got)
	})

	t.Run("Isolation", func(t *testing.T) {
		data := []byte("original")
		require.NoError(t, cache.Set(ctx, key, data))
		data[0] = 'X'

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), got)
	})
}
