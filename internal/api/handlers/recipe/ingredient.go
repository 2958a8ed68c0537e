package recipe

import (
	"net/http"
	"sort"
	"strings"

	"health-recipe-modifier/internal/api/handlers"
	"health-recipe-modifier/internal/core/condition"
	recipeService "health-recipe-modifier/internal/core/recipe"
	"health-recipe-modifier/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IngredientItem 規則目錄中的食材
type IngredientItem struct {
	Ingredient string `json:"ingredient"`
	Category   string `json:"category"`
}

// ConditionItem 規則目錄中的狀況
type ConditionItem struct {
	Tag         string `json:"tag"`
	DisplayName string `json:"display_name"`
}

// ExtractRequest 食材擷取請求
type ExtractRequest struct {
	Text string `json:"text"`
}

// ListIngredients 列出所有規則食材
func (h *Handler) ListIngredients(c *gin.Context) {
	all, err := h.rules.All(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	items := make([]IngredientItem, 0, len(all))
	for _, r := range all {
		items = append(items, IngredientItem{Ingredient: r.Ingredient, Category: r.Category})
	}
	c.JSON(http.StatusOK, items)
}

// ListConditions 列出所有規則涵蓋的狀況，去重並排序
func (h *Handler) ListConditions(c *gin.Context) {
	all, err := h.rules.All(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	seen := map[string]struct{}{}
	for _, r := range all {
		for _, tag := range r.HarmfulFor {
			if cond := condition.Parse(tag); !cond.IsZero() {
				seen[cond.Tag()] = struct{}{}
			}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	items := make([]ConditionItem, 0, len(tags))
	for _, tag := range tags {
		items = append(items, ConditionItem{Tag: tag, DisplayName: condition.Parse(tag).DisplayName()})
	}
	c.JSON(http.StatusOK, items)
}

// RecipeIngredients 依名稱查詢範例食譜的食材
func (h *Handler) RecipeIngredients(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		handlers.RespondError(c, common.NewValidationError("missing recipe name"))
		return
	}

	ingredients, err := h.catalog.Ingredients(c.Request.Context(), name)
	if err != nil {
		common.LogWarn("範例食譜查詢失敗", zap.String("name", name), zap.Error(err))
		ingredients = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// SuggestRecipeNames 食譜名稱拼寫建議，查詢失敗時視為拼寫正確
func (h *Handler) SuggestRecipeNames(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		handlers.RespondError(c, common.NewValidationError("missing recipe name"))
		return
	}

	suggestion, err := h.catalog.Suggest(c.Request.Context(), name)
	if err != nil {
		common.LogWarn("食譜名稱建議失敗", zap.String("name", name), zap.Error(err))
		suggestion = &recipeService.NameSuggestion{IsCorrect: true, Suggestions: []string{}}
	}
	c.JSON(http.StatusOK, suggestion)
}

// ExtractIngredients 由食譜名稱或文字擷取食材，失敗時回傳空清單
func (h *Handler) ExtractIngredients(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"ingredients": []string{}})
		return
	}

	ingredients := h.extractor.Extract(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}
