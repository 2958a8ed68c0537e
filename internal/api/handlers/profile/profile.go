package profile

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"health-recipe-modifier/internal/api/handlers"
	"health-recipe-modifier/internal/core/history"
	profileService "health-recipe-modifier/internal/core/profile"
	"health-recipe-modifier/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// maxFieldLength 文字欄位的最大字元數
const maxFieldLength = 500

// Handler 使用者設定處理程序
type Handler struct {
	store profileService.Store
}

// NewHandler 創建新的設定處理程序
func NewHandler(store profileService.Store) *Handler {
	return &Handler{store: store}
}

// UpdateRequest 更新設定請求
type UpdateRequest struct {
	MedicalCondition   string `json:"medical_condition"`
	DietType           string `json:"diet_type"`
	Allergies          string `json:"allergies"`
	FitnessGoal        string `json:"fitness_goal"`
	DailyCalorieTarget int    `json:"daily_calorie_target"`
}

func (r UpdateRequest) validate() error {
	if r.DailyCalorieTarget < 0 {
		return common.NewValidationError("daily_calorie_target must not be negative")
	}
	for name, v := range map[string]string{
		"medical_condition": r.MedicalCondition,
		"diet_type":         r.DietType,
		"allergies":         r.Allergies,
		"fitness_goal":      r.FitnessGoal,
	} {
		if len(v) > maxFieldLength {
			return common.NewValidationError(fmt.Sprintf("%s must be at most %d characters", name, maxFieldLength))
		}
	}
	return nil
}

// Get 取得使用者設定，尚未設定時回傳空設定
func (h *Handler) Get(c *gin.Context) {
	owner := history.Owner(handlers.UserID(c))
	p, err := h.store.Get(c.Request.Context(), owner)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if p == nil {
		p = &profileService.Profile{UserID: owner}
	}
	c.JSON(http.StatusOK, p)
}

// Update 儲存使用者設定
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondBindError(c, err)
		return
	}
	if err := req.validate(); err != nil {
		handlers.RespondError(c, err)
		return
	}

	p := &profileService.Profile{
		UserID:             history.Owner(handlers.UserID(c)),
		MedicalCondition:   strings.TrimSpace(req.MedicalCondition),
		DietType:           strings.TrimSpace(req.DietType),
		Allergies:          strings.TrimSpace(req.Allergies),
		FitnessGoal:        strings.TrimSpace(req.FitnessGoal),
		DailyCalorieTarget: req.DailyCalorieTarget,
		UpdatedAt:          time.Now().UTC(),
	}
	if err := h.store.Save(c.Request.Context(), p); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
