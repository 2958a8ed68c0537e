// Package handlers 放置 HTTP 處理器共用的回應與請求輔助函式
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"health-recipe-modifier/internal/api/middleware"
	"health-recipe-modifier/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondError 將錯誤轉換為統一的錯誤響應
func RespondError(c *gin.Context, err error) {
	status, resp := common.ToErrorResponse(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
	}
	if status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogDebug("請求被拒絕", fields...)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

// RespondBindError 請求格式錯誤
func RespondBindError(c *gin.Context, err error) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		RespondError(c, common.ErrPayloadTooLarge)
		return
	}
	RespondError(c, common.NewError(common.ErrCodeInvalidRequest, common.ErrInvalidRequest.Message, http.StatusBadRequest, err))
}

// UserID 由外部驗證層注入的使用者 ID，未登入時為空字串
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(middleware.UserIDHeader))
}

// IngredientInput 接受逗號分隔字串或字串陣列
type IngredientInput string

// UnmarshalJSON implements json.Unmarshaler.
func (in *IngredientInput) UnmarshalJSON(data []byte) error {
	var text string
	if err := common.ParseJSONBytes(data, &text); err == nil {
		*in = IngredientInput(text)
		return nil
	}
	var list []string
	if err := common.ParseJSONBytes(data, &list); err != nil {
		return errors.New("ingredients must be a string or an array of strings")
	}
	*in = IngredientInput(strings.Join(list, ", "))
	return nil
}

// String 回傳逗號分隔的原始字串
func (in IngredientInput) String() string {
	return string(in)
}
