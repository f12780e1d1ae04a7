package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ressKim-io/eccn-classifier/internal/domain/service"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/config"
)

const keyPrefix = "eccn:classify:"

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// store is the part of the redis client the result cache uses
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// ResultCache stores classification results keyed by product text.
// A ResultCache with a nil client is a no-op.
type ResultCache struct {
	client store
	ttl    time.Duration
}

// NewResultCache creates a result cache
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	if client == nil {
		return &ResultCache{ttl: ttl}
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Key returns the cache key for a product text
func Key(productText string) string {
	sum := sha256.Sum256([]byte(productText))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached result for a product text, if any
func (c *ResultCache) Get(ctx context.Context, productText string) (*service.ClassificationResult, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}

	data, err := c.client.Get(ctx, Key(productText)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	var result service.ClassificationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached result: %w", err)
	}
	return &result, true, nil
}

// Set stores a result for a product text
func (c *ResultCache) Set(ctx context.Context, productText string, result *service.ClassificationResult) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := c.client.Set(ctx, Key(productText), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}
