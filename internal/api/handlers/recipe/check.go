package recipe

import (
	"net/http"

	"health-recipe-modifier/internal/api/handlers"
	"health-recipe-modifier/internal/core/profile"
	recipeService "health-recipe-modifier/internal/core/recipe"
	"health-recipe-modifier/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckRequest 食材檢查請求
type CheckRequest struct {
	Ingredients handlers.IngredientInput `json:"ingredients"`
	Condition   string                   `json:"condition,omitempty"`
	RecipeName  string                   `json:"recipe_name,omitempty"`
	Servings    int                      `json:"servings,omitempty"`
	Profile     *ProfileInput            `json:"profile,omitempty"`
}

// ProfileInput 單次請求覆寫的個人設定
type ProfileInput struct {
	DietType           string `json:"diet_type"`
	Allergies          string `json:"allergies"`
	FitnessGoal        string `json:"fitness_goal"`
	DailyCalorieTarget int    `json:"daily_calorie_target"`
}

// CheckIngredients 比對有害食材、生成替代食譜並計算營養
func (h *Handler) CheckIngredients(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondBindError(c, err)
		return
	}

	checkReq := recipeService.CheckRequest{
		UserID:      handlers.UserID(c),
		Ingredients: req.Ingredients.String(),
		Condition:   req.Condition,
		RecipeName:  req.RecipeName,
		Servings:    req.Servings,
	}
	if req.Profile != nil {
		checkReq.Profile = &profile.Profile{
			DietType:           req.Profile.DietType,
			Allergies:          req.Profile.Allergies,
			FitnessGoal:        req.Profile.FitnessGoal,
			DailyCalorieTarget: req.Profile.DailyCalorieTarget,
		}
	}

	result, err := h.pipeline.Check(c.Request.Context(), checkReq)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogInfo("食材檢查完成",
		zap.String("request_id", requestid.Get(c)),
		zap.String("condition", result.Condition),
		zap.Int("ingredients", len(result.Original)),
		zap.Int("harmful", len(result.Harmful)),
		zap.String("recipe_source", string(result.RecipeSource)),
	)

	c.JSON(http.StatusOK, result)
}
