package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neighbourgood/booking/config"
	"github.com/neighbourgood/booking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds the catalog read cache. Bookings themselves are never
// cached: the store is the single source of truth for them.
type RedisCache struct {
	client       *redis.Client
	resourcesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, resourcesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:       redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		resourcesTTL: resourcesTTL,
	}
}

func (c *RedisCache) GetResources(ctx context.Context) ([]domain.Resource, error) {
	data, err := c.client.Get(ctx, resourcesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var resources []domain.Resource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (c *RedisCache) SetResources(ctx context.Context, resources []domain.Resource) error {
	payload, err := json.Marshal(resources)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, resourcesKey(), payload, c.resourcesTTL).Err()
}

func (c *RedisCache) GetResource(ctx context.Context, id int64) (*domain.Resource, error) {
	data, err := c.client.Get(ctx, resourceKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var resource domain.Resource
	if err := json.Unmarshal(data, &resource); err != nil {
		return nil, err
	}
	return &resource, nil
}

func (c *RedisCache) SetResource(ctx context.Context, resource *domain.Resource) error {
	payload, err := json.Marshal(resource)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, resourceKey(resource.ID), payload, c.resourcesTTL).Err()
}

func resourcesKey() string {
	return "cache:resources"
}

func resourceKey(id int64) string {
	return fmt.Sprintf("cache:resource:%d", id)
}
