package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-recipe-modifier/internal/api"
	"health-recipe-modifier/internal/api/handlers/health"
	historyHandler "health-recipe-modifier/internal/api/handlers/history"
	profileHandler "health-recipe-modifier/internal/api/handlers/profile"
	recipeHandler "health-recipe-modifier/internal/api/handlers/recipe"
	"health-recipe-modifier/internal/core/ai/cache"
	"health-recipe-modifier/internal/core/ai/gemini"
	"health-recipe-modifier/internal/core/ai/openrouter"
	"health-recipe-modifier/internal/core/ai/provider"
	"health-recipe-modifier/internal/core/ai/queue"
	"health-recipe-modifier/internal/core/ai/service"
	"health-recipe-modifier/internal/core/history"
	"health-recipe-modifier/internal/core/nutrition"
	"health-recipe-modifier/internal/core/recipe"
	"health-recipe-modifier/internal/core/rules"
	"health-recipe-modifier/internal/infrastructure/config"
	"health-recipe-modifier/internal/infrastructure/metrics"
	"health-recipe-modifier/internal/infrastructure/persistence"
	"health-recipe-modifier/internal/pkg/common"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	ctx := context.Background()

	// 資料庫與種子資料
	db, err := persistence.Open(cfg.Database)
	if err != nil {
		common.LogFatal("Failed to open database", zap.Error(err))
	}
	defer persistence.Close(db)

	if err := persistence.SeedDatabase(ctx, db); err != nil {
		common.LogFatal("Failed to seed database", zap.Error(err))
	}

	ruleStore := persistence.NewRuleRepository(db)
	if err := persistence.EnsureCoreRules(ctx, ruleStore); err != nil {
		common.LogWarn("Failed to ensure core rules", zap.Error(err))
	}

	m := metrics.New(prometheus.NewRegistry())

	// 文字生成服務
	aiService := service.NewService(newProvider(cfg.Generation), cfg.Generation.MaxTokens, m)
	defer aiService.Close()

	// 食譜快取
	recipeCache, err := newRecipeCache(ctx, cfg, db)
	if err != nil {
		common.LogFatal("Failed to initialize recipe cache", zap.Error(err))
	}
	if closer, ok := recipeCache.(io.Closer); ok {
		defer closer.Close()
	}

	// 營養聚合器，未設定 USDA key 時只用估算值
	var lookup nutrition.Lookup
	if usda := nutrition.NewUSDAClient(cfg.Nutrition.USDABaseURL, cfg.Nutrition.USDAAPIKey, cfg.Nutrition.Timeout); usda != nil {
		lookup = usda
	}
	aggregator := nutrition.NewAggregator(lookup, nutrition.Options{
		Workers: cfg.Nutrition.Workers,
		Timeout: cfg.Nutrition.Timeout,
		Metrics: m,
	})

	jobs := queue.NewManager(cfg.Queue.Workers, cfg.Queue.MaxSize, m)

	historyStore := persistence.NewHistoryRepository(db)
	profileStore := persistence.NewProfileRepository(db)

	matcher := rules.NewMatcher(rules.NewCache(ruleStore, cfg.Rules.TTL, m))
	generator := recipe.NewGenerator(recipeCache, aiService, m)
	pipeline := recipe.NewPipeline(matcher, generator, aggregator, profileStore, historyStore, jobs, recipe.PipelineOptions{
		DefaultServings: cfg.Nutrition.DefaultServings,
		AsyncNutrition:  cfg.Nutrition.AsyncAttach,
	})

	router := api.SetupRouter(cfg, api.Handlers{
		Health: health.NewHandler(cfg.App.Version, aiService.ProviderName(), jobs, func(ctx context.Context) error {
			return persistence.Ping(ctx, db)
		}),
		Recipe: recipeHandler.NewHandler(
			pipeline,
			recipe.NewCatalog(persistence.NewCatalogRepository(db)),
			recipe.NewExtractor(aiService),
			ruleStore,
			aggregator,
			cfg.Nutrition.DefaultServings,
		),
		History: historyHandler.NewHandler(history.NewService(historyStore)),
		Profile: profileHandler.NewHandler(profileStore),
		Metrics: m,
	})

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.String("generation", aiService.ProviderName()),
			zap.String("recipe_cache", cfg.RecipeCache.Backend),
			zap.Bool("usda", lookup != nil),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	// 等待背景營養計算完成
	jobs.Close()

	common.LogInfo("Server exited")
}

// newProvider 依設定建立文字生成提供者，未設定 key 時回傳 nil
func newProvider(cfg config.GenerationConfig) provider.Provider {
	switch cfg.Provider {
	case "openrouter":
		if cfg.OpenRouterAPIKey == "" {
			common.LogWarn("OpenRouter API key not set, recipes will use the fallback template")
			return nil
		}
		return openrouter.NewClient(provider.Config{
			APIKey:    cfg.OpenRouterAPIKey,
			Model:     cfg.Model,
			Timeout:   cfg.Timeout,
			BaseURL:   cfg.OpenRouterURL,
			MaxTokens: cfg.MaxTokens,
		})
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			common.LogWarn("Gemini API key not set, recipes will use the fallback template")
			return nil
		}
		return gemini.NewClient(provider.Config{
			APIKey:    cfg.GeminiAPIKey,
			Model:     cfg.Model,
			Timeout:   cfg.Timeout,
			BaseURL:   cfg.GeminiURL,
			MaxTokens: cfg.MaxTokens,
		})
	default:
		return nil
	}
}

// newRecipeCache 依設定建立食譜快取
func newRecipeCache(ctx context.Context, cfg *config.Config, db *gorm.DB) (cache.Store, error) {
	switch cfg.RecipeCache.Backend {
	case "redis":
		store, err := cache.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		return cache.NewMemoryStore(cfg.RecipeCache.MaxSize), nil
	default:
		return persistence.NewRecipeCacheRepository(db), nil
	}
}
