package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-recipe-modifier/internal/core/ai/provider"
)

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "gm-key", r.URL.Query().Get("key"))

		var body generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		assert.Equal(t, "user", body.Contents[0].Role)
		assert.Equal(t, "make a recipe", body.Contents[0].Parts[0].Text)
		require.NotNil(t, body.GenerationConfig)
		assert.Equal(t, 800, body.GenerationConfig.MaxOutputTokens)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"part one "},{"text":"part two"}]}}],"usageMetadata":{"totalTokenCount":42}}`))
	}))
	defer srv.Close()

	c := NewClient(provider.Config{APIKey: "gm-key", Model: "gemini-2.0-flash", BaseURL: srv.URL, Timeout: time.Second})
	resp, err := c.Generate(context.Background(), provider.NewPromptRequest("make a recipe", 800))
	require.NoError(t, err)
	assert.Equal(t, "part one part two", resp.Content)
	assert.Equal(t, 42, resp.Usage.TotalTokens)
}

func TestClient_OpenRouterStyleModelFallsBackToDefault(t *testing.T) {
	c := NewClient(provider.Config{Model: "google/gemini-2.0-flash-001"})
	assert.Equal(t, "gemini-2.0-flash", c.GetModel())
}

func TestClient_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient(provider.Config{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second})
	_, err := c.Generate(context.Background(), provider.NewPromptRequest("x", 0))
	assert.Error(t, err)
}
