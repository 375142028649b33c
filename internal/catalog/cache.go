// Package catalog provides a read-through cache over the food catalog
// endpoints, so screen redraws don't refetch on every render.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/anhqhe/orderfood/internal/domain"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched catalog page stays fresh.
const DefaultTTL = 30 * time.Second

type cachedFoods struct {
	foods     []domain.Food
	fetchedAt time.Time
}

type cachedCategories struct {
	categories []string
	fetchedAt  time.Time
}

// Cache is a TTL cache keyed by category filter. Concurrent fetches for the
// same key collapse into one backend call.
type Cache struct {
	api   domain.CatalogAPI
	clock clockwork.Clock
	ttl   time.Duration
	group singleflight.Group

	mu         sync.Mutex
	foods      map[string]cachedFoods // key: category filter, "" = all
	categories *cachedCategories
}

// NewCache creates a catalog cache with the given TTL.
func NewCache(api domain.CatalogAPI, clock clockwork.Clock, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		api:   api,
		clock: clock,
		ttl:   ttl,
		foods: make(map[string]cachedFoods),
	}
}

// Foods returns the available foods for a category filter ("" = all),
// serving from cache while fresh.
func (c *Cache) Foods(ctx context.Context, category string) ([]domain.Food, error) {
	c.mu.Lock()
	if entry, ok := c.foods[category]; ok && c.clock.Since(entry.fetchedAt) < c.ttl {
		foods := entry.foods
		c.mu.Unlock()
		return foods, nil
	}
	c.mu.Unlock()

	result, err, _ := c.group.Do("foods:"+category, func() (any, error) {
		foods, err := c.api.ListFoods(ctx, category)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.foods[category] = cachedFoods{foods: foods, fetchedAt: c.clock.Now()}
		c.mu.Unlock()
		return foods, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Food), nil
}

// Categories returns the distinct catalog categories, cached like Foods.
func (c *Cache) Categories(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	if c.categories != nil && c.clock.Since(c.categories.fetchedAt) < c.ttl {
		categories := c.categories.categories
		c.mu.Unlock()
		return categories, nil
	}
	c.mu.Unlock()

	result, err, _ := c.group.Do("categories", func() (any, error) {
		categories, err := c.api.ListCategories(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.categories = &cachedCategories{categories: categories, fetchedAt: c.clock.Now()}
		c.mu.Unlock()
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

// Invalidate drops everything cached. Admin catalog mutations call this so
// the next browse sees fresh data.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.foods = make(map[string]cachedFoods)
	c.categories = nil
}
