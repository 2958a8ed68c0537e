package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"health-recipe-modifier/internal/core/ai/provider"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client Gemini generateContent 客戶端
type Client struct {
	client *resty.Client
	cfg    provider.Config
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// NewClient 創建 Gemini 客戶端
func NewClient(cfg provider.Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" || strings.Contains(cfg.Model, "/") {
		cfg.Model = "gemini-2.0-flash"
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{client: client, cfg: cfg}
}

// Name 提供者名稱
func (c *Client) Name() string { return "gemini" }

// GetModel 模型名稱
func (c *Client) GetModel() string { return c.cfg.Model }

// GetTimeout 請求超時
func (c *Client) GetTimeout() time.Duration { return c.cfg.Timeout }

// Close resty 客戶端不需關閉
func (c *Client) Close() error { return nil }

// Generate 呼叫 models/{model}:generateContent
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	body := generateRequest{}
	for _, m := range req.Messages {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		body.Contents = append(body.Contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}
	if maxTokens > 0 || req.Temperature > 0 {
		body.GenerationConfig = &generationConfig{MaxOutputTokens: maxTokens, Temperature: req.Temperature}
	}

	var result generateResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.cfg.APIKey).
		SetPathParam("model", c.cfg.Model).
		SetBody(body).
		SetResult(&result).
		Post("/models/{model}:generateContent")
	if err != nil {
		return nil, fmt.Errorf("error calling Gemini API: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("Gemini API request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	return &provider.Response{
		Content: sb.String(),
		Usage: provider.Usage{
			PromptTokens:     result.UsageMetadata.PromptTokenCount,
			CompletionTokens: result.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      result.UsageMetadata.TotalTokenCount,
		},
	}, nil
}
