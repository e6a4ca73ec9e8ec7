package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, 5*time.Minute), mr
}

func sampleCart(buyerID uuid.UUID) *Cart {
	return &Cart{
		BuyerID: buyerID,
		Lines: []Line{
			{ShopID: uuid.New(), ProductID: uuid.New(), Color: "black", Size: "M", Quantity: 2, Title: "Hoodie", UnitPriceAtAdd: 350},
		},
	}
}

func TestCacheGet_Hit(t *testing.T) {
	cache, mr := setupTestRedis(t)
	buyerID := uuid.New()
	c := sampleCart(buyerID)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey(buyerID.String()), string(data)))

	got, err := cache.Get(context.Background(), buyerID.String())
	require.NoError(t, err)
	assert.Equal(t, c.BuyerID, got.BuyerID)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Hoodie", got.Lines[0].Title)
}

func TestCacheGet_Miss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	_, err := cache.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCacheSet_ThenGet(t *testing.T) {
	cache, mr := setupTestRedis(t)
	buyerID := uuid.New()
	c := sampleCart(buyerID)

	require.NoError(t, cache.Set(context.Background(), buyerID.String(), c))
	assert.True(t, mr.Exists(cacheKey(buyerID.String())))

	got, err := cache.Get(context.Background(), buyerID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, got.Lines[0].Quantity)
}

func TestCacheSet_TTLWithinJitterBounds(t *testing.T) {
	cache, mr := setupTestRedis(t)
	buyerID := uuid.New()

	require.NoError(t, cache.Set(context.Background(), buyerID.String(), sampleCart(buyerID)))

	ttl := mr.TTL(cacheKey(buyerID.String()))
	assert.GreaterOrEqual(t, ttl, 5*time.Minute)
	assert.LessOrEqual(t, ttl, 6*time.Minute)
}

func TestCacheDelete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	buyerID := uuid.New()

	require.NoError(t, cache.Set(context.Background(), buyerID.String(), sampleCart(buyerID)))
	require.NoError(t, cache.Delete(context.Background(), buyerID.String()))
	assert.False(t, mr.Exists(cacheKey(buyerID.String())))
}

func TestCacheGet_CorruptPayload(t *testing.T) {
	cache, mr := setupTestRedis(t)
	buyerID := uuid.New()
	require.NoError(t, mr.Set(cacheKey(buyerID.String()), "{not json"))

	_, err := cache.Get(context.Background(), buyerID.String())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
