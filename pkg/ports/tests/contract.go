package tests

import (
	"context"
	"testing"

	"github.com/aretw0/infoboard/pkg/domain"
	"github.com/aretw0/infoboard/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunHeaderCacheContract runs a suite of tests to verify that a HeaderCache implementation
// adheres to the defined interface contract. The cache must start empty.
func RunHeaderCacheContract(t *testing.T, cache ports.HeaderCache) {
	t.Helper()
	ctx := context.Background()

	info := domain.HeaderInfo{
		Title:            "Glassdoor",
		Description:      "Open positions",
		TimestampSeconds: 1700000000,
		Items: []domain.ItemInfo{
			{Title: "a", Description: "first", TimestampSeconds: 1700000001},
			{Title: "b", Description: "second", ImageURL: "https://example.com/b.png", TimestampSeconds: 1700000002},
		},
	}

	t.Run("Get Empty", func(t *testing.T) {
		_, err := cache.Get(ctx)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, info))

		loaded, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, info, loaded)
	})

	t.Run("Set Replaces", func(t *testing.T) {
		next := info
		next.Title = "Updated"
		next.Items = nil
		require.NoError(t, cache.Set(ctx, next))

		loaded, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Updated", loaded.Title)
		assert.Empty(t, loaded.Items)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, info))
		require.NoError(t, cache.Clear(ctx))

		_, err := cache.Get(ctx)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Clear should return ErrCacheMiss")
	})
}
