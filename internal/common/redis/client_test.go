package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edgecomet/seotext/internal/common/configtypes"
)

func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(&configtypes.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name      string
		config    *configtypes.RedisConfig
		logger    *zap.Logger
		errorText string
	}{
		{
			name:      "nil config",
			config:    nil,
			logger:    zap.NewNop(),
			errorText: "redis config is required",
		},
		{
			name:      "nil logger",
			config:    &configtypes.RedisConfig{Addr: "localhost:6379"},
			logger:    nil,
			errorText: "logger is required",
		},
		{
			name:      "invalid Redis address",
			config:    &configtypes.RedisConfig{Addr: "invalid:99999"},
			logger:    zap.NewNop(),
			errorText: "failed to connect to Redis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config, tt.logger)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorText)
			assert.Nil(t, client)
		})
	}
}

func TestClientBasicOperations(t *testing.T) {
	client, mr := setupTestClient(t)
	ctx := context.Background()

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, client.Ping(ctx))
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "test:key", []byte("test_value"), time.Minute))

		value, found, err := client.Get(ctx, "test:key")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("test_value"), value)
		assert.Equal(t, time.Minute, mr.TTL("test:key"))
	})

	t.Run("get non-existent key", func(t *testing.T) {
		value, found, err := client.Get(ctx, "non:existent:key")
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)
	})

	t.Run("expired key is gone", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "test:expiring", []byte("v"), time.Second))
		mr.FastForward(2 * time.Second)

		_, found, err := client.Get(ctx, "test:expiring")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete multiple keys", func(t *testing.T) {
		keys := []string{"test:del:1", "test:del:2"}
		for _, key := range keys {
			require.NoError(t, client.Set(ctx, key, []byte("value"), time.Minute))
		}

		require.NoError(t, client.Del(ctx, keys...))
		for _, key := range keys {
			assert.False(t, mr.Exists(key))
		}
	})

	t.Run("delete no keys", func(t *testing.T) {
		assert.NoError(t, client.Del(ctx))
	})
}

func TestClientServerDown(t *testing.T) {
	client, mr := setupTestClient(t)
	mr.Close()

	ctx := context.Background()
	_, _, err := client.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, client.Set(ctx, "k", []byte("v"), time.Minute))
	assert.Error(t, client.Ping(ctx))
}

func TestCompletionKey(t *testing.T) {
	key := CompletionKey("gpt-4-turbo-preview", "prompt")
	assert.Regexp(t, `^completion:[0-9a-f]{16}$`, key)
	assert.Equal(t, key, CompletionKey("gpt-4-turbo-preview", "prompt"))
	assert.NotEqual(t, key, CompletionKey("other-model", "prompt"))
	assert.NotEqual(t, key, CompletionKey("gpt-4-turbo-preview", "prompt2"))
	assert.NotEqual(t, CompletionKey("ab", "c"), CompletionKey("a", "bc"))
}
