package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedisCache(t *testing.T) (*RedisCacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return newRedisCacheService(client, time.Hour, zap.NewNop()), mr
}

func TestRedisCacheService_GetSet(t *testing.T) {
	rcs, _ := newTestRedisCache(t)
	ctx := context.Background()

	result := newResult(t, "2 kg rice", "v1")

	_, found, err := rcs.Get(ctx, result.Fingerprint)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, rcs.Set(ctx, result.Fingerprint, result))

	got, found, err := rcs.Get(ctx, result.Fingerprint)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, result.Fingerprint, got.Fingerprint)
	assert.Equal(t, result.Raw, got.Raw)
	assert.Equal(t, "v1", got.LexiconVersion)
	require.Len(t, got.Items, len(result.Items))
	assert.Equal(t, result.Items[0].Name, got.Items[0].Name)

	exists, err := rcs.Exists(ctx, result.Fingerprint)
	require.NoError(t, err)
	assert.True(t, exists)

	ttl, err := rcs.GetTTL(ctx, result.Fingerprint)
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)

	stats, err := rcs.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalHits)
	assert.Equal(t, int64(1), stats.TotalMiss)
	assert.Equal(t, int64(1), stats.TotalItems)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
}

func TestRedisCacheService_Expiry(t *testing.T) {
	rcs, mr := newTestRedisCache(t)
	ctx := context.Background()

	result := newResult(t, "oka kg tomatolu", "v1")
	require.NoError(t, rcs.Set(ctx, result.Fingerprint, result))

	mr.FastForward(2 * time.Hour)

	_, found, err := rcs.Get(ctx, result.Fingerprint)
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, mr.Exists(rcs.versionKey("v1")))
}

func TestRedisCacheService_InvalidateByLexiconVersion(t *testing.T) {
	rcs, mr := newTestRedisCache(t)
	ctx := context.Background()

	old1 := newResult(t, "2 kg rice", "v1")
	old2 := newResult(t, "oka kg tomatolu", "v1")
	current := newResult(t, "2 kg rice", "v2")
	require.NoError(t, rcs.Set(ctx, old1.Fingerprint, old1))
	require.NoError(t, rcs.Set(ctx, old2.Fingerprint, old2))
	require.NoError(t, rcs.Set(ctx, current.Fingerprint, current))

	members, err := mr.Members(rcs.versionKey("v1"))
	require.NoError(t, err)
	assert.Len(t, members, 2)

	require.NoError(t, rcs.InvalidateByLexiconVersion(ctx, "v2"))

	for _, key := range []string{old1.Fingerprint, old2.Fingerprint} {
		exists, err := rcs.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists, key)
	}
	assert.False(t, mr.Exists(rcs.versionKey("v1")))

	exists, err := rcs.Exists(ctx, current.Fingerprint)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, mr.Exists(rcs.versionKey("v2")))

	// Gọi lại với cùng phiên bản không xóa thêm gì
	require.NoError(t, rcs.InvalidateByLexiconVersion(ctx, "v2"))
	stats, err := rcs.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalItems)
}

func TestRedisCacheService_DeleteAndClear(t *testing.T) {
	rcs, mr := newTestRedisCache(t)
	ctx := context.Background()

	a := newResult(t, "2 kg rice", "v1")
	b := newResult(t, "oka kg tomatolu", "v1")
	require.NoError(t, rcs.Set(ctx, a.Fingerprint, a))
	require.NoError(t, rcs.Set(ctx, b.Fingerprint, b))

	require.NoError(t, rcs.Delete(ctx, a.Fingerprint))
	exists, err := rcs.Exists(ctx, a.Fingerprint)
	require.NoError(t, err)
	assert.False(t, exists)

	_, _, err = rcs.Get(ctx, b.Fingerprint)
	require.NoError(t, err)

	require.NoError(t, rcs.Clear(ctx))
	assert.Empty(t, mr.Keys())

	stats, err := rcs.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalHits)
	assert.Equal(t, int64(0), stats.TotalMiss)
	assert.Equal(t, int64(0), stats.TotalItems)
}
