package health

import (
	"net/http"
	"runtime"
	"time"

	recipeService "batch-maker/internal/core/recipe"

	"github.com/gin-gonic/gin"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                     `json:"status"`
	Timestamp time.Time                  `json:"timestamp"`
	Version   string                     `json:"version"`
	Runtime   map[string]interface{}     `json:"runtime"`
	Queue     *recipeService.QueueStatus `json:"queue,omitempty"`
	Cache     string                     `json:"cache"`
}

// QueueReporter 提供批次隊列狀態
type QueueReporter interface {
	QueueStatus() recipeService.QueueStatus
}

// Handler 健康檢查處理器
type Handler struct {
	version      string
	cacheBackend string
	queue        QueueReporter
}

// NewHandler 創建健康檢查處理器，cacheBackend 為空字串表示快取停用
func NewHandler(version, cacheBackend string, queue QueueReporter) *Handler {
	if cacheBackend == "" {
		cacheBackend = "disabled"
	}
	return &Handler{version: version, cacheBackend: cacheBackend, queue: queue}
}

// HealthCheck GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Cache:     h.cacheBackend,
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
		status := h.queue.QueueStatus()
		response.Queue = &status
	}

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck GET /ready，隊列已滿時回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.queue != nil {
		status := h.queue.QueueStatus()
		if status.QueueLength >= status.MaxQueueSize {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "busy",
				"queue":  status,
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck GET /live
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
