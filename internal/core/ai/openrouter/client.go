package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"health-recipe-modifier/internal/core/ai/provider"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client OpenRouter chat completions 客戶端
type Client struct {
	client *resty.Client
	cfg    provider.Config
}

type chatRequest struct {
	Model       string             `json:"model"`
	Messages    []provider.Message `json:"messages"`
	MaxTokens   int                `json:"max_tokens,omitempty"`
	Temperature float64            `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage provider.Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg provider.Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", "https://health-recipe-modifier.local").
		SetHeader("X-Title", "Health Recipe Modifier")

	return &Client{client: client, cfg: cfg}
}

// Name 提供者名稱
func (c *Client) Name() string { return "openrouter" }

// GetModel 模型名稱
func (c *Client) GetModel() string { return c.cfg.Model }

// GetTimeout 請求超時
func (c *Client) GetTimeout() time.Duration { return c.cfg.Timeout }

// Close resty 客戶端不需關閉
func (c *Client) Close() error { return nil }

// Generate 發送 chat completion 請求
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter api key is not configured")
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}

	var result chatResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       c.cfg.Model,
			Messages:    req.Messages,
			MaxTokens:   maxTokens,
			Temperature: req.Temperature,
		}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("OpenRouter API returned %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Error != nil {
		return nil, fmt.Errorf("OpenRouter API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no choices in OpenRouter response")
	}

	return &provider.Response{
		Content: result.Choices[0].Message.Content,
		Usage:   result.Usage,
	}, nil
}
