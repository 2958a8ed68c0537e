package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Rules.TTL)
	assert.Equal(t, 3*time.Second, cfg.Nutrition.Timeout)
	assert.Equal(t, 8*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, 8, cfg.Nutrition.Workers)
	assert.Equal(t, 4, cfg.Nutrition.DefaultServings)
	assert.Equal(t, "database", cfg.RecipeCache.Backend)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GENERATION_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "gm-test-key-123456")
	t.Setenv("RECIPE_CACHE_BACKEND", "memory")
	t.Setenv("APP_NUTRITION_WORKERS", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Generation.Provider)
	assert.Equal(t, "gm-test-key-123456", cfg.Generation.GeminiAPIKey)
	assert.Equal(t, "memory", cfg.RecipeCache.Backend)
	assert.Equal(t, 3, cfg.Nutrition.Workers)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:      ServerConfig{Port: 8080},
			Generation:  GenerationConfig{Provider: "none"},
			RecipeCache: RecipeCacheConfig{Backend: "database"},
			Database:    DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
			Rules:       RulesConfig{TTL: time.Minute},
			Nutrition:   NutritionConfig{Workers: 8, Timeout: time.Second},
			Queue:       QueueConfig{Workers: 1, MaxSize: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "unknown provider", mutate: func(c *Config) { c.Generation.Provider = "gpt" }, wantErr: true},
		{name: "memory cache without size", mutate: func(c *Config) { c.RecipeCache.Backend = "memory" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "zero rules ttl", mutate: func(c *Config) { c.Rules.TTL = 0 }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.Nutrition.Workers = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validateConfig(c)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", maskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}
