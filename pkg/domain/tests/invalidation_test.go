package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
)

func fill(cache *mockCache, keys ...string) {
	for _, key := range keys {
		_ = cache.Set(key, "[]")
	}
}

func TestInvalidateProduct(t *testing.T) {
	cache := newMockCache()
	fill(cache, "latestProducts", "categories", "adminProducts", "product-P1", "product-P2", "all-orders", "admin-stats")

	err := service.NewCacheInvalidator(cache).Invalidate(service.Invalidation{Product: true, ProductIDs: []string{"P1"}})
	require.NoError(t, err)

	for _, key := range []string{"latestProducts", "categories", "adminProducts", "product-P1"} {
		assert.False(t, cache.Has(key), key)
	}
	for _, key := range []string{"product-P2", "all-orders", "admin-stats"} {
		assert.True(t, cache.Has(key), key)
	}
}

func TestInvalidateOrder(t *testing.T) {
	t.Run("Scoped to user and order", func(t *testing.T) {
		cache := newMockCache()
		fill(cache, "all-orders", "my-orders-u1", "my-orders-u2", "order-o1")

		err := service.NewCacheInvalidator(cache).Invalidate(service.Invalidation{Order: true, UserID: "u1", OrderID: "o1"})
		require.NoError(t, err)

		assert.False(t, cache.Has("all-orders"))
		assert.False(t, cache.Has("my-orders-u1"))
		assert.False(t, cache.Has("order-o1"))
		assert.True(t, cache.Has("my-orders-u2"))
	})

	t.Run("Missing ids resolve to undefined", func(t *testing.T) {
		keys := service.Invalidation{Order: true}.Keys()
		assert.Equal(t, []string{"all-orders", "my-orders-undefined", "order-undefined"}, keys)
	})
}

func TestInvalidateAdmin(t *testing.T) {
	cache := newMockCache()
	fill(cache, "admin-stats", "admin-pie-charts", "admin-bar-charts", "admin-line-charts", "latestProducts")

	require.NoError(t, service.NewCacheInvalidator(cache).Invalidate(service.Invalidation{Admin: true}))

	assert.Len(t, cache.store, 1)
	assert.True(t, cache.Has("latestProducts"))
}

func TestInvalidateFailure(t *testing.T) {
	cache := newMockCache()
	cache.failDel = true

	err := service.NewCacheInvalidator(cache).Invalidate(service.Invalidation{Admin: true})
	assert.ErrorIs(t, err, model.ErrCacheInvalidation)

	assert.NoError(t, service.NewCacheInvalidator(cache).Invalidate(service.Invalidation{}))
}
