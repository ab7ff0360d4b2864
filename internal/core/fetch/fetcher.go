package fetch

import (
	"context"
	"fmt"
	"io"
	"time"

	"batch-maker/internal/infrastructure/config"
	"batch-maker/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Fetcher 抓取網頁原始 HTML
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchError 遠端回應非 2xx
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %s", e.URL, e.Status)
}

// Client 以 resty 實作的 Fetcher
type Client struct {
	client  *resty.Client
	maxBody int64
}

// NewClient 創建抓取客戶端
func NewClient(cfg config.FetchConfig) *Client {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8").
		SetDoNotParseResponse(true)

	return &Client{
		client:  client,
		maxBody: cfg.MaxBodyBytes,
	}
}

// Fetch 下載頁面內容，超過 maxBody 的部分會被截斷
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		common.LogWarn("抓取頁面失敗",
			zap.String("url", url),
			zap.Error(err),
		)
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		common.LogWarn("頁面回應非成功狀態",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode()),
		)
		return "", &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
		}
	}

	reader := io.Reader(body)
	if c.maxBody > 0 {
		reader = io.LimitReader(body, c.maxBody)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}

	common.LogDebug("頁面抓取完成",
		zap.String("url", url),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)
	return string(data), nil
}
