package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"grocery-manager/internal/pkg/common"
)

// Cache is a read-through cache for text-generation responses, keyed by a
// hash of the prompt. Cache failures are never surfaced; a broken cache just
// means more service calls.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a response cache over the given Redis client. A nil client
// disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached response for prompt, if any.
func (c *Cache) Get(ctx context.Context, prompt string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}

	val, err := c.client.Get(ctx, cacheKey(prompt)).Result()
	if err != nil {
		if err != redis.Nil {
			common.LogDebug("ai cache read failed", zap.Error(err))
		}
		return "", false
	}
	return val, true
}

// Set stores a response for prompt.
func (c *Cache) Set(ctx context.Context, prompt, content string) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Set(ctx, cacheKey(prompt), content, c.ttl).Err(); err != nil {
		common.LogDebug("ai cache write failed", zap.Error(err))
	}
}

func cacheKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "ai:response:" + hex.EncodeToString(hash[:])
}
