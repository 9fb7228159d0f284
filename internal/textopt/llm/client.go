// Package llm is a minimal client for OpenAI-compatible chat completion APIs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/edgecomet/seotext/internal/common/configtypes"
)

const (
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultModel    = "gpt-4-turbo-preview"
	DefaultTimeout  = 60 * time.Second

	// maxResponseSize caps the completion body read from the API
	maxResponseSize = 1 << 20
)

var (
	// ErrEmptyResponse is returned when the API answers without any choice.
	ErrEmptyResponse = errors.New("completion returned no choices")
	// ErrUnauthorized is returned for 401 and 403 answers.
	ErrUnauthorized = errors.New("completion API rejected the credentials")
)

// Completion is the first choice of a chat completion answer.
type Completion struct {
	Model   string
	Content string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client sends single-message chat completion requests.
type Client struct {
	httpClient *http.Client
	endpoint   string
	model      string
	apiKey     string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient creates a client from cfg. Empty fields fall back to the
// package defaults.
func NewClient(cfg configtypes.LLMConfig, logger *zap.Logger) *Client {
	c := &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		timeout:  cfg.Timeout.ToDuration(),
		logger:   logger,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}

	c.httpClient = &http.Client{
		Timeout: c.timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	return c
}

// Model returns the model name sent with every request.
func (c *Client) Model() string {
	return c.model
}

// Complete sends prompt as a single user message and returns the first
// choice. The call is bounded by the configured timeout and by ctx.
func (c *Client) Complete(ctx context.Context, prompt string) (*Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	startTime := time.Now().UTC()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Completion request failed",
			zap.String("model", c.model),
			zap.Duration("duration", time.Since(startTime)),
			zap.Error(err))
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read completion response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		c.logger.Warn("Completion API returned non-200 status",
			zap.String("model", c.model),
			zap.Int("status_code", httpResp.StatusCode),
			zap.String("response", truncate(string(respBody), 512)))
		if httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("%w (status %d)", ErrUnauthorized, httpResp.StatusCode)
		}
		return nil, fmt.Errorf("completion API returned status %d", httpResp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	model := parsed.Model
	if model == "" {
		model = c.model
	}

	c.logger.Debug("Completion received",
		zap.String("model", model),
		zap.Int("content_length", len(parsed.Choices[0].Message.Content)),
		zap.Duration("duration", time.Since(startTime)))

	return &Completion{
		Model:   model,
		Content: parsed.Choices[0].Message.Content,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "") + "..."
}
