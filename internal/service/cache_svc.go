package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CacheService provides a Redis cache-aside layer for score lookups. The
// cache TTL matches the score's valid_until horizon, so cache expiry and
// staleness signalling agree.
type CacheService struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCacheService creates a CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client and all cache
// operations become no-ops.
func NewCacheService(redisURL string, ttl time.Duration, log zerolog.Logger) *CacheService {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{ttl: ttl}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Str("url", redisURL).Msg("redis: invalid URL, caching disabled")
		return &CacheService{ttl: ttl}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		return &CacheService{ttl: ttl}
	}

	log.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb, ttl: ttl}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetScore retrieves a cached score response. Returns nil if not cached or
// the cache is disabled.
func (c *CacheService) GetScore(ctx context.Context, userID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, scoreKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetScore stores a score response in cache.
func (c *CacheService) SetScore(ctx context.Context, userID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, scoreKey(userID), b, c.ttl).Err()
}

// InvalidateScores removes users' cached score responses after a
// recomputation has been committed.
func (c *CacheService) InvalidateScores(ctx context.Context, userIDs ...string) error {
	if c.rdb == nil || len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = scoreKey(id)
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func scoreKey(userID string) string {
	return fmt.Sprintf("score:%s", userID)
}
