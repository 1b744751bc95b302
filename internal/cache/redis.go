package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis and returns the client, or nil when addr is
// empty or the server is unreachable. A nil client degrades the cache to a
// pass-through; the API keeps working against the store alone.
func InitRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		return nil
	}

	log.Println("Redis connected successfully")
	return client
}
