package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"health-recipe-modifier/internal/core/ai/queue"
	"health-recipe-modifier/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// readyTimeout 就緒檢查的資料庫 ping 逾時
const readyTimeout = 2 * time.Second

// Pinger 依賴服務連線檢查
type Pinger func(ctx context.Context) error

// QueueStatusProvider 背景隊列狀態
type QueueStatusProvider interface {
	GetQueueStatus() *queue.Status
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Version    string                 `json:"version"`
	Generation string                 `json:"generation"`
	Runtime    map[string]interface{} `json:"runtime"`
	Queue      *queue.Status          `json:"queue,omitempty"`
}

// Handler 健康檢查處理程序
type Handler struct {
	version    string
	generation string
	queue      QueueStatusProvider
	ping       Pinger
}

// NewHandler 創建健康檢查處理程序。queue 與 ping 可為 nil。
func NewHandler(version, generation string, q QueueStatusProvider, ping Pinger) *Handler {
	if generation == "" {
		generation = "none"
	}
	return &Handler{version: version, generation: generation, queue: q, ping: ping}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:     "ok",
		Timestamp:  time.Now(),
		Version:    h.version,
		Generation: h.generation,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}
	if h.queue != nil {
		response.Queue = h.queue.GetQueueStatus()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，資料庫無法連線時回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			common.LogWarn("Readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
