package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/devconnector/pkg/logger"
)

func TestRedisCache_NilClientBypasses(t *testing.T) {
	cache := NewRedisCache(nil, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, cache.SetJSON(ctx, "k", []string{"a"}, time.Minute))

	var out []string
	hit, err := cache.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, cache.Delete(ctx, "k"))
}

func TestRedisCache_UnreachableServerReportsErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	cache := NewRedisCache(client, logger.NewNop())

	var out []string
	hit, err := cache.GetJSON(context.Background(), "k", &out)

	assert.False(t, hit)
	assert.Error(t, err)
	assert.True(t, cache.warnedUnavailable.Load())
}
