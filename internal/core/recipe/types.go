package recipe

import (
	"batch-maker/internal/core/recipe/parser"
)

// BatchResult 批次匯入中單一網址的結果，Recipe 與 Err 只會有一個非空
type BatchResult struct {
	URL    string
	Recipe *parser.ParsedRecipe
	Err    error
}

// QueueStatus 匯入隊列狀態
type QueueStatus struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}
