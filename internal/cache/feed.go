package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyScreamsFeed caches the public scream feed
const KeyScreamsFeed = "screams:feed"

// FeedCache is a cache-aside layer over Redis. All methods tolerate a nil
// client: gets miss, sets and invalidations succeed silently.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeedCache creates a new FeedCache
func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{client: client, ttl: ttl}
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (c *FeedCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	s, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with the cache's TTL
func (c *FeedCache) SetJSON(ctx context.Context, key string, v any) error {
	if c == nil || c.client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, c.ttl).Err()
}

// Invalidate removes the given keys
func (c *FeedCache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
