package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"attendance/domain"
)

type redisCooldown struct {
	client *redis.Client
	prefix string
}

// NewRedisCooldown backs the scan debounce with redis SET NX + TTL so the
// guard holds across instances sharing one scanner fleet.
func NewRedisCooldown(client *redis.Client, prefix string) domain.CooldownStore {
	if prefix == "" {
		prefix = "attendance:scan"
	}
	return &redisCooldown{client: client, prefix: prefix}
}

func (rc *redisCooldown) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := rc.client.SetNX(ctx, fmt.Sprintf("%s:%s", rc.prefix, key), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("cooldown acquire failed: %w", err)
	}
	return ok, nil
}

func (rc *redisCooldown) Release(ctx context.Context, key string) error {
	if err := rc.client.Del(ctx, fmt.Sprintf("%s:%s", rc.prefix, key)).Err(); err != nil {
		return fmt.Errorf("cooldown release failed: %w", err)
	}
	return nil
}

type memoryCooldown struct {
	mu      sync.Mutex
	expiry  map[string]time.Time
	nowFunc func() time.Time
}

// NewMemoryCooldown is the single-process fallback used when redis is not
// configured, and in tests.
func NewMemoryCooldown() domain.CooldownStore {
	return &memoryCooldown{
		expiry:  make(map[string]time.Time),
		nowFunc: time.Now,
	}
}

func (mc *memoryCooldown) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.nowFunc()
	if until, ok := mc.expiry[key]; ok && now.Before(until) {
		return false, nil
	}

	// Drop stale entries so the map does not grow with every unique scan.
	for k, until := range mc.expiry {
		if !now.Before(until) {
			delete(mc.expiry, k)
		}
	}

	mc.expiry[key] = now.Add(ttl)
	return true, nil
}

func (mc *memoryCooldown) Release(ctx context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	delete(mc.expiry, key)
	return nil
}
