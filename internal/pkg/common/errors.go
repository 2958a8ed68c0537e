package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示輸入驗證錯誤，直接回報給呼叫端且不重試
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrLookupUnavailable 外部協作者（規則庫、快取、營養查詢、文字生成）無法使用
var ErrLookupUnavailable = errors.New("lookup unavailable")

// IsLookupUnavailable 檢查是否為協作者不可用錯誤
func IsLookupUnavailable(err error) bool {
	return errors.Is(err, ErrLookupUnavailable)
}

// ErrRecordNotFound 資料不存在或不屬於該使用者
var ErrRecordNotFound = errors.New("record not found")

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeValidation      = "VALIDATION_ERROR"  // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"   // 408
	ErrCodeConflict        = "CONFLICT"          // 409
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE" // 413
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
)

// 預定義錯誤
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "請求超時", http.StatusRequestTimeout, nil)
	ErrConflict        = NewError(ErrCodeConflict, "重複的請求", http.StatusConflict, nil)
	ErrPayloadTooLarge = NewError(ErrCodePayloadTooLarge, "請求內容過大", http.StatusRequestEntityTooLarge, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	ErrInternalError      = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "服務暫時不可用", http.StatusServiceUnavailable, nil)
)

// ToErrorResponse 將錯誤轉換為 HTTP 狀態碼與響應內容
func ToErrorResponse(err error) (int, ErrorResponse) {
	var ce *CustomError
	switch {
	case IsValidationError(err):
		return http.StatusBadRequest, ErrorResponse{Code: ErrCodeValidation, Message: err.Error()}
	case errors.Is(err, ErrRecordNotFound):
		return http.StatusNotFound, ErrorResponse{Code: ErrCodeNotFound, Message: ErrNotFound.Message}
	case IsLookupUnavailable(err):
		return http.StatusServiceUnavailable, ErrorResponse{Code: ErrCodeServiceUnavailable, Message: ErrServiceUnavailable.Message}
	case errors.As(err, &ce):
		resp := ErrorResponse{Code: ce.Code, Message: ce.Message}
		if ce.Err != nil {
			resp.Details = ce.Err.Error()
		}
		return ce.Status, resp
	default:
		return http.StatusInternalServerError, ErrorResponse{Code: ErrCodeInternalError, Message: ErrInternalError.Message}
	}
}
