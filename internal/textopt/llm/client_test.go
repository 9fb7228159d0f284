package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edgecomet/seotext/internal/common/configtypes"
	"github.com/edgecomet/seotext/pkg/types"
)

func newTestClient(url string) *Client {
	return NewClient(configtypes.LLMConfig{
		Endpoint: url,
		Model:    "test-model",
		APIKey:   "sk-test",
		Timeout:  types.Duration(2 * time.Second),
	}, zap.NewNop())
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(configtypes.LLMConfig{}, zap.NewNop())
	assert.Equal(t, DefaultEndpoint, c.endpoint)
	assert.Equal(t, DefaultModel, c.Model())
	assert.Equal(t, DefaultTimeout, c.timeout)
}

func TestComplete_Success(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"test-model-0125","choices":[{"message":{"role":"assistant","content":"OPTIMIZED_TEXT: hi"}}]}`))
	}))
	defer server.Close()

	completion, err := newTestClient(server.URL).Complete(context.Background(), "the prompt")
	require.NoError(t, err)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, chatMessage{Role: "user", Content: "the prompt"}, got.Messages[0])

	assert.Equal(t, "test-model-0125", completion.Model)
	assert.Equal(t, "OPTIMIZED_TEXT: hi", completion.Content)
}

func TestComplete_ModelFallsBackToConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":""}}]}`))
	}))
	defer server.Close()

	completion, err := newTestClient(server.URL).Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "test-model", completion.Model)
	assert.Empty(t, completion.Content)
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"bad key"}`, wantErr: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, wantErr: ErrUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`},
		{name: "malformed json", status: http.StatusOK, body: `{"choices":`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			completion, err := newTestClient(server.URL).Complete(context.Background(), "p")
			require.Error(t, err)
			assert.Nil(t, completion)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestComplete_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server.URL).Complete(ctx, "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestComplete_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).Complete(context.Background(), "p")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
