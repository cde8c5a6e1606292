package config

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// BootRedis connects to redis with short timeouts. Returns nil when
// REDIS_ADDR is not configured; the scan cool-down then falls back to the
// in-memory store.
func BootRedis() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	redisClient = redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return redisClient
}

func RedisHealthy(ctx context.Context, client *redis.Client) bool {
	if client == nil {
		return false
	}
	return client.Ping(ctx).Err() == nil
}
