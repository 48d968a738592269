// Package redis caches aggregated proximity results for a short TTL.
// The cache is advisory: callers treat every error as a miss.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/ports"
)

const defaultTTL = 30 * time.Second

type resultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultCache(addr, password string, ttl time.Duration) (ports.ResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &resultCache{client: client, ttl: ttl}, nil
}

func (c *resultCache) Get(ctx context.Context, center domain.Location, radiusKM float64) ([]domain.QuestionResult, error) {
	data, err := c.client.Get(ctx, cacheKey(center, radiusKM)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached results: %w", err)
	}

	var results []domain.QuestionResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to decode cached results: %w", err)
	}
	return results, nil
}

func (c *resultCache) Set(ctx context.Context, center domain.Location, radiusKM float64, results []domain.QuestionResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(center, radiusKM), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache results: %w", err)
	}
	return nil
}

// cacheKey rounds coordinates to four decimal places (~11 m) so nearby
// requests share an entry within the TTL window.
func cacheKey(center domain.Location, radiusKM float64) string {
	return fmt.Sprintf("results:%.4f:%.4f:%.1f", center.Latitude, center.Longitude, radiusKM)
}
