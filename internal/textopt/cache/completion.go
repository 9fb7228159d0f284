// Package cache stores chat completion answers in Redis for a bounded time so
// identical prompts are not sent twice.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edgecomet/seotext/internal/common/configtypes"
	"github.com/edgecomet/seotext/internal/common/redis"
)

// DefaultTTL applies when the configured ttl is zero.
const DefaultTTL = 24 * time.Hour

// Entry is a cached completion answer.
type Entry struct {
	Model   string `json:"model"`
	Content string `json:"content"`
}

// CompletionCache reads and writes completion entries keyed by model and
// prompt. Failures are logged and reported as misses; they never fail the
// request.
type CompletionCache struct {
	client      *redis.Client
	ttl         time.Duration
	compression string
	logger      *zap.Logger
}

func NewCompletionCache(client *redis.Client, cfg configtypes.CacheConfig, logger *zap.Logger) *CompletionCache {
	ttl := cfg.TTL.ToDuration()
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CompletionCache{
		client:      client,
		ttl:         ttl,
		compression: cfg.Compression,
		logger:      logger,
	}
}

// Get returns the cached entry for model and prompt, if any.
func (c *CompletionCache) Get(ctx context.Context, model, prompt string) (*Entry, bool) {
	key := redis.CompletionKey(model, prompt)

	payload, found, err := c.client.Get(ctx, key)
	if err != nil || !found {
		return nil, false
	}

	data, err := Decompress(payload)
	if err != nil {
		c.logger.Warn("Dropping undecodable completion cache entry",
			zap.String("key", key),
			zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("Dropping malformed completion cache entry",
			zap.String("key", key),
			zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, false
	}

	c.logger.Debug("Completion cache hit", zap.String("key", key))
	return &entry, true
}

// Put stores entry for model and prompt with the configured ttl.
func (c *CompletionCache) Put(ctx context.Context, model, prompt string, entry *Entry) error {
	key := redis.CompletionKey(model, prompt)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	payload, err := Compress(data, c.compression)
	if err != nil {
		c.logger.Warn("Failed to compress completion cache entry",
			zap.String("key", key),
			zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, key, payload, c.ttl); err != nil {
		return err
	}

	c.logger.Debug("Completion cached",
		zap.String("key", key),
		zap.Int("size", len(payload)),
		zap.Duration("ttl", c.ttl))
	return nil
}
