package service

import (
	"fmt"

	"storefront/pkg/domain/model"
)

const (
	KeyLatestProducts  = "latestProducts"
	KeyCategories      = "categories"
	KeyAdminProducts   = "adminProducts"
	KeyAllOrders       = "all-orders"
	KeyAdminStats      = "admin-stats"
	KeyAdminPieCharts  = "admin-pie-charts"
	KeyAdminBarCharts  = "admin-bar-charts"
	KeyAdminLineCharts = "admin-line-charts"
)

// unresolved fills a key segment for an identifier that was not supplied.
const unresolved = "undefined"

func ProductKey(id string) string { return "product-" + id }

func MyOrdersKey(userID string) string { return "my-orders-" + segment(userID) }

func OrderKey(id string) string { return "order-" + segment(id) }

func segment(id string) string {
	if id == "" {
		return unresolved
	}
	return id
}

// Invalidation describes what changed.
type Invalidation struct {
	Product    bool
	Order      bool
	Admin      bool
	UserID     string
	OrderID    string
	ProductIDs []string
}

func (i Invalidation) Keys() []string {
	var keys []string
	if i.Product {
		keys = append(keys, KeyLatestProducts, KeyCategories, KeyAdminProducts)
		for _, id := range i.ProductIDs {
			if id != "" {
				keys = append(keys, ProductKey(id))
			}
		}
	}
	if i.Order {
		keys = append(keys, KeyAllOrders, MyOrdersKey(i.UserID), OrderKey(i.OrderID))
	}
	if i.Admin {
		keys = append(keys, KeyAdminLineCharts, KeyAdminBarCharts, KeyAdminPieCharts, KeyAdminStats)
	}
	return keys
}

type CacheInvalidator interface {
	Invalidate(invalidation Invalidation) error
}

func NewCacheInvalidator(cache Cache) CacheInvalidator {
	return &cacheInvalidator{cache: cache}
}

type cacheInvalidator struct {
	cache Cache
}

func (c *cacheInvalidator) Invalidate(invalidation Invalidation) error {
	keys := invalidation.Keys()
	if len(keys) == 0 {
		return nil
	}
	if err := c.cache.Del(keys...); err != nil {
		return fmt.Errorf("%w: %v", model.ErrCacheInvalidation, err)
	}
	return nil
}
