package recipe

import (
	"context"
	"errors"
	"time"

	"batch-maker/internal/core/cache"
	"batch-maker/internal/core/fetch"
	"batch-maker/internal/core/recipe/parser"
	"batch-maker/internal/infrastructure/config"
	"batch-maker/internal/pkg/common"

	"go.uber.org/zap"
)

// ImportService 從純文字或網址匯入食譜
type ImportService struct {
	fetcher fetch.Fetcher
	cache   cache.Store
	queue   *Queue
}

// NewImportService 創建匯入服務並啟動批次隊列，store 可為 nil
func NewImportService(fetcher fetch.Fetcher, store cache.Store, queueCfg config.QueueConfig) *ImportService {
	s := &ImportService{
		fetcher: fetcher,
		cache:   store,
	}
	s.queue = NewQueue(queueCfg, s.ImportURL)
	s.queue.Start()
	return s
}

// ImportText 解析貼上的食譜文字
func (s *ImportService) ImportText(ctx context.Context, text string) (*parser.ParsedRecipe, error) {
	start := time.Now()
	recipe, err := parser.ParseText(text)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyText) {
			err = common.ErrEmptyRecipe.Wrap(err)
		} else {
			err = common.ErrParseFailure.Wrap(err)
		}
		common.LogImport("text", 0, 0, time.Since(start), err)
		return nil, err
	}

	common.LogImport("text", len(recipe.Steps), len(recipe.Ingredients), time.Since(start), nil)
	return recipe, nil
}

// ImportURL 抓取網頁並解析食譜，優先使用結構化資料，找不到任何步驟時回傳 common.ErrNoSteps
func (s *ImportService) ImportURL(ctx context.Context, rawURL string) (*parser.ParsedRecipe, error) {
	start := time.Now()

	url, err := common.NormalizeURL(rawURL)
	if err != nil {
		common.LogImport(rawURL, 0, 0, time.Since(start), err)
		return nil, err
	}

	if recipe, ok := s.fromCache(ctx, url); ok {
		return recipe, nil
	}

	recipe, err := s.importURL(ctx, url)
	common.LogImport(url, stepCount(recipe), ingredientCount(recipe), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, url, recipe)
	return recipe, nil
}

func (s *ImportService) importURL(ctx context.Context, url string) (*parser.ParsedRecipe, error) {
	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, common.ErrGatewayTimeout.Wrap(err)
		}
		return nil, common.ErrFetchFailed.Wrap(err)
	}

	recipe, err := parser.ParseHTML(html, url)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyText) {
			return nil, common.ErrNoSteps.Wrap(err)
		}
		return nil, common.ErrParseFailure.Wrap(err)
	}

	if len(recipe.Steps) == 0 {
		return nil, common.ErrNoSteps
	}
	return recipe, nil
}

// ImportBatch 透過隊列並行匯入多個網址，結果順序與輸入一致
func (s *ImportService) ImportBatch(ctx context.Context, urls []string) []BatchResult {
	pending := make([]<-chan BatchResult, len(urls))
	results := make([]BatchResult, len(urls))

	for i, url := range urls {
		ch, err := s.queue.Enqueue(ctx, url)
		if err != nil {
			results[i] = BatchResult{URL: url, Err: err}
			continue
		}
		pending[i] = ch
	}

	for i, ch := range pending {
		if ch == nil {
			continue
		}
		results[i] = s.queue.Wait(ctx, urls[i], ch)
	}

	common.LogInfo("批次匯入完成",
		zap.Int("total", len(urls)),
		zap.Int("failed", countFailed(results)),
	)
	return results
}

// QueueStatus 取得批次隊列狀態
func (s *ImportService) QueueStatus() QueueStatus {
	return s.queue.Status()
}

// Close 停止批次隊列
func (s *ImportService) Close() {
	s.queue.Close()
}

func (s *ImportService) fromCache(ctx context.Context, url string) (*parser.ParsedRecipe, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, cache.RecipeKey(url))
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("讀取快取失敗", zap.String("url", url), zap.Error(err))
		}
		return nil, false
	}

	var recipe parser.ParsedRecipe
	if err := common.ParseJSON(data, &recipe); err != nil {
		common.LogWarn("快取內容無法解析", zap.String("url", url), zap.Error(err))
		return nil, false
	}
	return &recipe, true
}

func (s *ImportService) toCache(ctx context.Context, url string, recipe *parser.ParsedRecipe) {
	if s.cache == nil {
		return
	}

	data, err := common.ToJSON(recipe)
	if err != nil {
		common.LogWarn("序列化食譜失敗", zap.String("url", url), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, cache.RecipeKey(url), data); err != nil {
		common.LogWarn("寫入快取失敗", zap.String("url", url), zap.Error(err))
	}
}

func stepCount(r *parser.ParsedRecipe) int {
	if r == nil {
		return 0
	}
	return len(r.Steps)
}

func ingredientCount(r *parser.ParsedRecipe) int {
	if r == nil {
		return 0
	}
	return len(r.Ingredients)
}

func countFailed(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
