package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Generation  GenerationConfig  `mapstructure:"generation"`
	Nutrition   NutritionConfig   `mapstructure:"nutrition"`
	Rules       RulesConfig       `mapstructure:"rules"`
	RecipeCache RecipeCacheConfig `mapstructure:"recipe_cache"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Queue       QueueConfig       `mapstructure:"queue"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	DedupWindow time.Duration     `mapstructure:"dedup_window"`
	LogLevel    string            `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// GenerationConfig 文字生成服務設定
type GenerationConfig struct {
	Provider         string        `mapstructure:"provider"` // openrouter | gemini | none
	OpenRouterAPIKey string        `mapstructure:"openrouter_api_key"`
	OpenRouterURL    string        `mapstructure:"openrouter_url"`
	GeminiAPIKey     string        `mapstructure:"gemini_api_key"`
	GeminiURL        string        `mapstructure:"gemini_url"`
	Model            string        `mapstructure:"model"`
	MaxTokens        int           `mapstructure:"max_tokens"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// NutritionConfig 營養查詢設定
type NutritionConfig struct {
	USDAAPIKey      string        `mapstructure:"usda_api_key"`
	USDABaseURL     string        `mapstructure:"usda_base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Workers         int           `mapstructure:"workers"`
	DefaultServings int           `mapstructure:"default_servings"`
	AsyncAttach     bool          `mapstructure:"async_attach"`
}

// RulesConfig 食材規則快取設定
type RulesConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RecipeCacheConfig 食譜快取設定
type RecipeCacheConfig struct {
	Backend string `mapstructure:"backend"` // database | redis | memory
	MaxSize int    `mapstructure:"max_size"`
}

// DatabaseConfig 資料庫設定
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// QueueConfig 背景營養計算隊列設定
type QueueConfig struct {
	Workers int `mapstructure:"workers"`
	MaxSize int `mapstructure:"max_size"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（不存在時忽略）
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"generation.provider":           "GENERATION_PROVIDER",
		"generation.openrouter_api_key": "OPENROUTER_API_KEY",
		"generation.gemini_api_key":     "GEMINI_API_KEY",
		"generation.model":              "GENERATION_MODEL",
		"generation.max_tokens":         "MODEL_MAX_TOKENS",
		"nutrition.usda_api_key":        "USDA_API_KEY",
		"nutrition.async_attach":        "NUTRITION_ASYNC_ATTACH",
		"recipe_cache.backend":          "RECIPE_CACHE_BACKEND",
		"database.driver":               "DATABASE_DRIVER",
		"database.dsn":                  "DATABASE_DSN",
		"redis.addr":                    "REDIS_ADDR",
		"redis.password":                "REDIS_PASSWORD",
		"rate_limit.enabled":            "RATE_LIMIT_ENABLED",
		"rate_limit.requests":           "RATE_LIMIT_REQUESTS",
		"rate_limit.window":             "RATE_LIMIT_WINDOW",
		"dedup_window":                  "DEDUP_WINDOW",
		"log_level":                     "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// logger 尚未初始化，改用 fmt.Println
	fmt.Println("Loading configuration",
		"provider:", v.GetString("generation.provider"),
		"openrouter_api_key:", maskAPIKey(v.GetString("generation.openrouter_api_key")),
		"gemini_api_key:", maskAPIKey(v.GetString("generation.gemini_api_key")),
		"database:", v.GetString("database.driver"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "health-recipe-modifier")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "25s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB

	// 文字生成設定
	v.SetDefault("generation.provider", "openrouter")
	v.SetDefault("generation.openrouter_url", "https://openrouter.ai/api/v1")
	v.SetDefault("generation.gemini_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("generation.model", "google/gemini-2.0-flash-001")
	v.SetDefault("generation.max_tokens", 1000)
	v.SetDefault("generation.timeout", "8s")

	// 營養查詢設定
	v.SetDefault("nutrition.usda_base_url", "https://api.nal.usda.gov/fdc/v1")
	v.SetDefault("nutrition.timeout", "3s")
	v.SetDefault("nutrition.workers", 8)
	v.SetDefault("nutrition.default_servings", 4)
	v.SetDefault("nutrition.async_attach", false)

	// 規則快取與食譜快取
	v.SetDefault("rules.ttl", "5m")
	v.SetDefault("recipe_cache.backend", "database")
	v.SetDefault("recipe_cache.max_size", 1000)

	// 資料庫與 Redis
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/recipes.db")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	// 隊列設定
	v.SetDefault("queue.workers", 4)
	v.SetDefault("queue.max_size", 100)

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	switch config.Generation.Provider {
	case "openrouter", "gemini", "none":
	default:
		return fmt.Errorf("unsupported generation provider: %q", config.Generation.Provider)
	}

	switch config.RecipeCache.Backend {
	case "database", "redis":
	case "memory":
		if config.RecipeCache.MaxSize <= 0 {
			return fmt.Errorf("invalid recipe cache max size")
		}
	default:
		return fmt.Errorf("unsupported recipe cache backend: %q", config.RecipeCache.Backend)
	}

	switch config.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %q", config.Database.Driver)
	}
	if config.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}

	if config.Rules.TTL <= 0 {
		return fmt.Errorf("invalid rules ttl")
	}
	if config.Nutrition.Workers <= 0 {
		return fmt.Errorf("invalid nutrition workers")
	}
	if config.Nutrition.Timeout <= 0 {
		return fmt.Errorf("invalid nutrition timeout")
	}

	if config.Queue.Workers <= 0 {
		return fmt.Errorf("invalid queue workers")
	}
	if config.Queue.MaxSize <= 0 {
		return fmt.Errorf("invalid queue max size")
	}

	return nil
}
