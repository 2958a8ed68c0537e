package api

import (
	"time"

	"health-recipe-modifier/internal/api/handlers/health"
	historyHandler "health-recipe-modifier/internal/api/handlers/history"
	profileHandler "health-recipe-modifier/internal/api/handlers/profile"
	recipeHandler "health-recipe-modifier/internal/api/handlers/recipe"
	"health-recipe-modifier/internal/api/middleware"
	"health-recipe-modifier/internal/infrastructure/config"
	"health-recipe-modifier/internal/infrastructure/metrics"
	"health-recipe-modifier/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers 路由所需的處理程序
type Handlers struct {
	Health  *health.Handler
	Recipe  *recipeHandler.Handler
	History *historyHandler.Handler
	Profile *profileHandler.Handler
	Metrics *metrics.Metrics
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Logger(h.Metrics))
	router.Use(middleware.Recovery())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", middleware.UserIDHeader},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.RequestContext(cfg.Server.RequestTimeout))

	// 健康檢查路由
	router.GET("/health", h.Health.HealthCheck)
	router.GET("/ready", h.Health.ReadinessCheck)
	router.GET("/live", h.Health.LivenessCheck)
	if h.Metrics != nil {
		router.GET("/metrics", h.Metrics.Handler())
	}

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	api.Use(middleware.Deduplication(cfg.DedupWindow))
	{
		api.GET("/ingredients", h.Recipe.ListIngredients)
		api.POST("/ingredients/check", h.Recipe.CheckIngredients)
		api.GET("/conditions", h.Recipe.ListConditions)
		api.GET("/recipes/ingredients", h.Recipe.RecipeIngredients)
		api.GET("/recipes/suggest", h.Recipe.SuggestRecipeNames)
		api.POST("/nutrition", h.Recipe.Nutrition)
		api.POST("/ai/extract-ingredients", h.Recipe.ExtractIngredients)

		historyGroup := api.Group("/history")
		{
			historyGroup.GET("", h.History.List)
			historyGroup.PATCH("/:id/favorite", h.History.ToggleFavorite)
			historyGroup.PATCH("/:id/category", h.History.SetCategory)
		}

		api.GET("/profile", h.Profile.Get)
		api.PUT("/profile", h.Profile.Update)
	}

	common.LogInfo("Router setup completed",
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
	)

	return router
}
