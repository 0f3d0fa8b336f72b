package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ekovaleva/procurement-assist/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "extraction:"

type cacheEntry struct {
	Filename  string    `json:"filename"`
	Result    *Result   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisCache stores extraction results keyed by document sha256, so
// re-uploading the same PDF does not hit the hosted models again.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to redis. An empty URL means caching is not
// configured and returns a nil cache, which the service treats as disabled.
func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Result, bool) {
	raw, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("extraction cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Result == nil {
		return nil, false
	}
	return entry.Result, true
}

func (c *RedisCache) Set(ctx context.Context, key, filename string, r *Result) {
	raw, err := json.Marshal(cacheEntry{Filename: filename, Result: r, CreatedAt: time.Now().UTC()})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		logger.Log.Warn("extraction cache write failed", zap.Error(err))
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
