// Package redis wraps go-redis with logging for the completion cache.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/edgecomet/seotext/internal/common/configtypes"
)

// connectTimeout bounds the PING issued by NewClient
const connectTimeout = 5 * time.Second

// Client is a byte oriented key/value client.
type Client struct {
	rdb    *redis.Client
	addr   string
	logger *zap.Logger
}

// NewClient connects to cfg.Addr and verifies the connection with PING.
func NewClient(cfg *configtypes.RedisConfig, logger *zap.Logger) (*Client, error) {
	switch {
	case cfg == nil:
		return nil, fmt.Errorf("redis config is required")
	case logger == nil:
		return nil, fmt.Errorf("logger is required")
	}

	c := &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		addr:   cfg.Addr,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		_ = c.rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	logger.Info("Connected to Redis",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB))
	return c, nil
}

func (c *Client) Ping(ctx context.Context) error {
	pong, err := c.rdb.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	if pong != "PONG" {
		return fmt.Errorf("unexpected ping response: %s", pong)
	}
	return nil
}

// Get returns the value stored at key. A missing key yields nil, false, nil.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		c.logger.Warn("Redis GET failed",
			zap.String("addr", c.addr),
			zap.String("key", key),
			zap.Error(err))
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return value, true, nil
}

// Set stores value at key. A zero ttl keeps the key forever.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("Redis SET failed",
			zap.String("addr", c.addr),
			zap.String("key", key),
			zap.Int("bytes", len(value)),
			zap.Error(err))
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Del removes keys. Calling it without keys is a no-op.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Redis DEL failed",
			zap.String("addr", c.addr),
			zap.Strings("keys", keys),
			zap.Error(err))
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
