package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/infoboard/internal/adapters/redis"
	"github.com/aretw0/infoboard/pkg/domain"
	"github.com/aretw0/infoboard/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCache_Contract(t *testing.T) {
	_, client := setup(t)
	tests.RunHeaderCacheContract(t, redis.NewFromClient(client))
}

func TestRedisCache_TTL(t *testing.T) {
	mr, client := setup(t)
	cache := redis.NewFromClient(client, redis.WithTTL(time.Minute), redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, domain.HeaderInfo{Title: "cached"}))
	assert.True(t, mr.Exists("test:header"))

	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_CorruptValue(t *testing.T) {
	mr, client := setup(t)
	cache := redis.NewFromClient(client)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"header", "{not json"))

	_, err := cache.Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Ping(t *testing.T) {
	mr, client := setup(t)
	cache := redis.NewFromClient(client)

	require.NoError(t, cache.Ping(context.Background()))

	mr.Close()
	assert.Error(t, cache.Ping(context.Background()))
}
