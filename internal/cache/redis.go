package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Korolev91/estatehub/config"
	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	catalogTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, catalogTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		catalogTTL: catalogTTL,
	}
}

// NewRedisCacheWithClient is used by tests to plug a miniredis-backed client.
func NewRedisCacheWithClient(client *redis.Client, catalogTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, catalogTTL: catalogTTL}
}

func (c *RedisCache) GetActiveProperties(ctx context.Context) ([]domain.Property, error) {
	data, err := c.client.Get(ctx, catalogKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var properties []domain.Property
	if err := json.Unmarshal(data, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (c *RedisCache) SetActiveProperties(ctx context.Context, properties []domain.Property) error {
	payload, err := json.Marshal(properties)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey(), payload, c.catalogTTL).Err()
}

// InvalidateActiveProperties drops the cached listing after any catalog mutation.
func (c *RedisCache) InvalidateActiveProperties(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey()).Err()
}

func catalogKey() string {
	return "cache:properties:active"
}
