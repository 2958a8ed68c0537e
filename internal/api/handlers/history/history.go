package history

import (
	"net/http"
	"strconv"
	"strings"

	"health-recipe-modifier/internal/api/handlers"
	historyService "health-recipe-modifier/internal/core/history"
	"health-recipe-modifier/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler 飲食紀錄處理程序
type Handler struct {
	service *historyService.Service
}

// NewHandler 創建新的紀錄處理程序
func NewHandler(service *historyService.Service) *Handler {
	return &Handler{service: service}
}

// CategoryRequest 設定分類請求
type CategoryRequest struct {
	Category string `json:"category"`
}

// List 查詢使用者紀錄
func (h *Handler) List(c *gin.Context) {
	filter := historyService.Filter{
		Condition: strings.TrimSpace(c.Query("condition")),
		Category:  strings.TrimSpace(c.Query("category")),
	}

	if raw := c.Query("favorite"); raw != "" {
		fav, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondError(c, common.NewValidationError("favorite must be true or false"))
			return
		}
		filter.Favorite = &fav
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			handlers.RespondError(c, common.NewValidationError("limit must be a number"))
			return
		}
		filter.Limit = limit
	}

	entries, err := h.service.List(c.Request.Context(), handlers.UserID(c), filter)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// ToggleFavorite 切換收藏
func (h *Handler) ToggleFavorite(c *gin.Context) {
	id := c.Param("id")
	favorite, err := h.service.ToggleFavorite(c.Request.Context(), handlers.UserID(c), id)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "favorite": favorite})
}

// SetCategory 設定分類
func (h *Handler) SetCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondBindError(c, err)
		return
	}

	id := c.Param("id")
	category, err := h.service.SetCategory(c.Request.Context(), handlers.UserID(c), id, req.Category)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "category": category})
}
