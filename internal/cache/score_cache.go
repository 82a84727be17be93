// Package cache provides an optional Redis-backed cache of computed score
// results. The engine is cheap but the dashboard polls aggressively, so
// hot accounts are served from Redis with a short TTL. The cache is purely
// an accelerator: a miss or a Redis error falls back to computing.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ignite/conversion-monitor/internal/account"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "convscore:account:"

// ScoreCache caches scored accounts by account ID.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a ScoreCache. ttl <= 0 defaults to 5 minutes.
func New(client *redis.Client, ttl time.Duration) *ScoreCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ScoreCache{client: client, ttl: ttl}
}

// Get returns the cached scored account, or ok=false on a miss. Redis
// errors are logged and reported as misses, never propagated.
func (c *ScoreCache) Get(ctx context.Context, accountID string) (account.Scored, bool) {
	var sa account.Scored

	data, err := c.client.Get(ctx, keyPrefix+accountID).Bytes()
	if err == redis.Nil {
		return sa, false
	}
	if err != nil {
		log.Printf("[cache] get %s: %v", accountID, err)
		return sa, false
	}

	if err := json.Unmarshal(data, &sa); err != nil {
		log.Printf("[cache] decode %s: %v", accountID, err)
		return sa, false
	}
	return sa, true
}

// Set stores a scored account with the configured TTL.
func (c *ScoreCache) Set(ctx context.Context, sa account.Scored) error {
	data, err := json.Marshal(sa)
	if err != nil {
		return fmt.Errorf("encoding scored account %s: %w", sa.Result.AccountID, err)
	}
	if err := c.client.Set(ctx, keyPrefix+sa.Result.AccountID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("caching scored account %s: %w", sa.Result.AccountID, err)
	}
	return nil
}

// Invalidate drops one account's cached result.
func (c *ScoreCache) Invalidate(ctx context.Context, accountID string) error {
	if err := c.client.Del(ctx, keyPrefix+accountID).Err(); err != nil {
		return fmt.Errorf("invalidating %s: %w", accountID, err)
	}
	return nil
}
