package recipe

import (
	"net/http"

	"health-recipe-modifier/internal/api/handlers"
	"health-recipe-modifier/internal/core/condition"
	"health-recipe-modifier/internal/core/nutrition"
	"health-recipe-modifier/internal/core/rules"
	"health-recipe-modifier/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// NutritionRequest 營養查詢請求
type NutritionRequest struct {
	Ingredients handlers.IngredientInput `json:"ingredients"`
	Condition   string                   `json:"condition,omitempty"`
	Servings    int                      `json:"servings,omitempty"`
}

// NutritionResponse 營養查詢響應
type NutritionResponse struct {
	Summary  *nutrition.Summary           `json:"summary"`
	Warnings []nutrition.ConditionWarning `json:"warnings"`
	Display  *nutrition.Display           `json:"display"`
}

// Nutrition 計算食材清單的營養摘要
func (h *Handler) Nutrition(c *gin.Context) {
	var req NutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondBindError(c, err)
		return
	}

	raw := req.Ingredients.String()
	if err := rules.CheckInputLength(raw); err != nil {
		handlers.RespondError(c, err)
		return
	}
	items := common.SplitList(raw)
	if len(items) == 0 {
		handlers.RespondError(c, common.NewValidationError("at least one ingredient is required"))
		return
	}

	servings := req.Servings
	if servings <= 0 {
		servings = h.servings
	}

	summary := h.aggregator.Calculate(c.Request.Context(), items, servings)
	warnings := nutrition.ConditionWarnings(summary, condition.Parse(req.Condition))
	if warnings == nil {
		warnings = []nutrition.ConditionWarning{}
	}

	c.JSON(http.StatusOK, NutritionResponse{
		Summary:  summary,
		Warnings: warnings,
		Display:  nutrition.Format(summary),
	})
}
