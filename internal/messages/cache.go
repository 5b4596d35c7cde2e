package messages

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache memoizes generated messages so repeated requests for the same client
// and slot do not burn LLM quota.
type Cache interface {
	Get(ctx context.Context, req Request) (string, bool)
	Set(ctx context.Context, req Request, text string)
}

// RedisCache stores generated messages in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a cache. A zero ttl defaults to one hour.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if client == nil {
		panic("messages: redis client required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(req Request) string {
	sum := sha256.Sum256([]byte(req.ClientName + "\x00" + req.LastSession + "\x00" + req.Date + "\x00" + req.Time + "\x00" + req.MeetLink))
	return fmt.Sprintf("clinic:messages:%s:%s", req.Type, hex.EncodeToString(sum[:8]))
}

// Get returns a cached message, if present.
func (c *RedisCache) Get(ctx context.Context, req Request) (string, bool) {
	text, err := c.client.Get(ctx, cacheKey(req)).Result()
	if err != nil {
		return "", false
	}
	return text, true
}

// Set stores the message. Cache failures are silent; the message was already
// generated and the cache is best effort.
func (c *RedisCache) Set(ctx context.Context, req Request, text string) {
	_ = c.client.Set(ctx, cacheKey(req), text, c.ttl).Err()
}
