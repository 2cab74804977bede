package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"marketplace-server/entities"

	"github.com/redis/go-redis/v9"
)

const keyProduct = "product:"

// ProductCache caches single product lookups in Redis.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached product or nil on a miss.
func (c *ProductCache) Get(ctx context.Context, id string) (*entities.Product, error) {
	b, err := c.rdb.Get(ctx, keyProduct+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p entities.Product
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *ProductCache) Set(ctx context.Context, p *entities.Product) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyProduct+p.ID, b, c.ttl).Err()
}

// Invalidate drops the cached copy of a product after a write.
func (c *ProductCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, keyProduct+id).Err()
}

// Stats reports how many products are currently cached.
func (c *ProductCache) Stats(ctx context.Context) (map[string]interface{}, error) {
	var count int
	iter := c.rdb.Scan(ctx, 0, keyProduct+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"cached_products": count,
		"ttl_seconds":     c.ttl.Seconds(),
	}, nil
}
