package recipe

import (
	"context"
	"sync"
	"sync/atomic"

	"batch-maker/internal/core/recipe/parser"
	"batch-maker/internal/infrastructure/config"
	"batch-maker/internal/pkg/common"

	"go.uber.org/zap"
)

// ImportFunc 隊列中每個網址要執行的匯入
type ImportFunc func(ctx context.Context, url string) (*parser.ParsedRecipe, error)

type job struct {
	ctx    context.Context
	url    string
	result chan BatchResult
}

// Queue 固定數量 worker 的匯入隊列，緩衝滿時拒絕新工作
type Queue struct {
	workers int
	maxSize int
	handle  ImportFunc

	jobs      chan *job
	done      chan struct{}
	wg        sync.WaitGroup
	processed int64
	startOnce sync.Once
	closeOnce sync.Once
}

// NewQueue 創建匯入隊列
func NewQueue(cfg config.QueueConfig, handle ImportFunc) *Queue {
	return &Queue{
		workers: cfg.Workers,
		maxSize: cfg.MaxSize,
		handle:  handle,
		jobs:    make(chan *job, cfg.MaxSize),
		done:    make(chan struct{}),
	}
}

// Start 啟動 worker
func (q *Queue) Start() {
	q.startOnce.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go q.worker(i)
		}
		common.LogInfo("匯入隊列已啟動",
			zap.Int("workers", q.workers),
			zap.Int("max_queue_size", q.maxSize),
		)
	})
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	for {
		select {
		case <-q.done:
			return
		case j := <-q.jobs:
			var res BatchResult
			res.URL = j.url
			if err := j.ctx.Err(); err != nil {
				res.Err = err
			} else {
				res.Recipe, res.Err = q.handle(j.ctx, j.url)
			}
			atomic.AddInt64(&q.processed, 1)
			j.result <- res
			common.LogDebug("匯入工作完成", zap.Int("worker", id), zap.String("url", j.url))
		}
	}
}

// Enqueue 將網址加入隊列，隊列已滿時回傳 common.ErrQueueFull
func (q *Queue) Enqueue(ctx context.Context, url string) (<-chan BatchResult, error) {
	select {
	case <-q.done:
		return nil, common.ErrServiceUnavailable
	default:
	}

	j := &job{ctx: ctx, url: url, result: make(chan BatchResult, 1)}
	select {
	case q.jobs <- j:
		return j.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		common.LogWarn("匯入隊列已滿",
			zap.Int("queue_length", len(q.jobs)),
			zap.Int("max_queue_size", q.maxSize),
		)
		return nil, common.ErrQueueFull
	}
}

// Wait 等待結果，隊列關閉或 ctx 結束時回傳錯誤
func (q *Queue) Wait(ctx context.Context, url string, ch <-chan BatchResult) BatchResult {
	select {
	case res := <-ch:
		return res
	case <-ctx.Done():
		return BatchResult{URL: url, Err: ctx.Err()}
	case <-q.done:
		return BatchResult{URL: url, Err: common.ErrServiceUnavailable}
	}
}

// Status 取得隊列狀態
func (q *Queue) Status() QueueStatus {
	return QueueStatus{
		QueueLength:    len(q.jobs),
		ProcessedCount: atomic.LoadInt64(&q.processed),
		MaxQueueSize:   q.maxSize,
		Workers:        q.workers,
	}
}

// Close 停止所有 worker 並等待正在執行的工作結束
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
	})
	q.wg.Wait()
}
