package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRecommendationCache(t *testing.T) {
	t.Run("misses on unknown query", func(t *testing.T) {
		c := NewMemoryRecommendationCache()

		products, hit, err := c.Get(context.Background(), "teapot")

		assert.NoError(t, err)
		assert.False(t, hit)
		assert.Nil(t, products)
	})

	t.Run("round-trips a ranking", func(t *testing.T) {
		c := NewMemoryRecommendationCache()
		ids := []uuid.UUID{uuid.New(), uuid.New()}

		require.NoError(t, c.Set(context.Background(), "teapot", ids, time.Minute))
		products, hit, err := c.Get(context.Background(), "teapot")

		assert.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, ids, products)
	})

	t.Run("normalizes the query key", func(t *testing.T) {
		c := NewMemoryRecommendationCache()
		ids := []uuid.UUID{uuid.New()}

		require.NoError(t, c.Set(context.Background(), "  Teapot ", ids, time.Minute))
		products, hit, err := c.Get(context.Background(), "teapot")

		assert.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, ids, products)
	})

	t.Run("expires entries after their TTL", func(t *testing.T) {
		c := NewMemoryRecommendationCache()
		ids := []uuid.UUID{uuid.New()}

		require.NoError(t, c.Set(context.Background(), "teapot", ids, time.Nanosecond))
		time.Sleep(5 * time.Millisecond)
		_, hit, err := c.Get(context.Background(), "teapot")

		assert.NoError(t, err)
		assert.False(t, hit)
	})
}
