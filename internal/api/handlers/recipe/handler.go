package recipe

import (
	"health-recipe-modifier/internal/core/nutrition"
	recipeService "health-recipe-modifier/internal/core/recipe"
	"health-recipe-modifier/internal/core/rules"
)

// Handler 食材檢查、規則目錄、範例食譜與營養查詢處理程序
type Handler struct {
	pipeline   *recipeService.Pipeline
	catalog    *recipeService.Catalog
	extractor  *recipeService.Extractor
	rules      rules.Store
	aggregator *nutrition.Aggregator
	servings   int
}

// NewHandler 創建新的處理程序
func NewHandler(
	pipeline *recipeService.Pipeline,
	catalog *recipeService.Catalog,
	extractor *recipeService.Extractor,
	ruleStore rules.Store,
	aggregator *nutrition.Aggregator,
	defaultServings int,
) *Handler {
	if defaultServings <= 0 {
		defaultServings = nutrition.DefaultServings
	}
	return &Handler{
		pipeline:   pipeline,
		catalog:    catalog,
		extractor:  extractor,
		rules:      ruleStore,
		aggregator: aggregator,
		servings:   defaultServings,
	}
}
