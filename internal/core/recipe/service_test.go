package recipe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"batch-maker/internal/core/cache"
	"batch-maker/internal/core/recipe/parser"
	"batch-maker/internal/infrastructure/config"
	"batch-maker/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pancakePage = `<html><head><title>Pancakes</title>
<script type="application/ld+json">{"@type": "Recipe", "name": "Pancakes",
 "recipeIngredient": ["2 cups flour", "1 cup milk"],
 "recipeInstructions": ["Whisk everything", "Cook for 3 minutes per side"]}</script>
</head><body><p>Pancakes</p></body></html>`

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	errs  map[string]error
	calls map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: map[string]string{},
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	page, ok := f.pages[url]
	if !ok {
		return "", errors.New("no route to " + url)
	}
	return page, nil
}

func (f *fakeFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func queueConfig() config.QueueConfig {
	return config.QueueConfig{Workers: 2, MaxSize: 10}
}

func newTestService(t *testing.T, f *fakeFetcher, store cache.Store) *ImportService {
	t.Helper()
	s := NewImportService(f, store, queueConfig())
	t.Cleanup(s.Close)
	return s
}

func TestImportText(t *testing.T) {
	s := newTestService(t, newFakeFetcher(), nil)

	recipe, err := s.ImportText(context.Background(), "Toast\n2 slices bread\n1. Toast the bread for 2 minutes")
	require.NoError(t, err)
	assert.Equal(t, "Toast", recipe.Title)
	require.Len(t, recipe.Steps, 1)
	assert.Equal(t, 2, recipe.Steps[0].TimerMinutes)

	_, err = s.ImportText(context.Background(), "  \n ")
	assert.ErrorIs(t, err, common.ErrEmptyRecipe)
	assert.ErrorIs(t, err, parser.ErrEmptyText)
}

func TestImportURLStructured(t *testing.T) {
	f := newFakeFetcher()
	f.pages["https://example.com/pancakes"] = pancakePage
	s := newTestService(t, f, nil)

	recipe, err := s.ImportURL(context.Background(), "https://example.com/pancakes#jump")
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", recipe.Title)
	assert.Equal(t, "https://example.com/pancakes", recipe.Source)
	assert.Len(t, recipe.Ingredients, 2)
	require.Len(t, recipe.Steps, 2)
	assert.Equal(t, 3, recipe.Steps[1].TimerMinutes)
}

func TestImportURLErrors(t *testing.T) {
	f := newFakeFetcher()
	f.pages["https://example.com/empty"] = "<html><body><script>x()</script></body></html>"
	f.pages["https://example.com/prose"] = "<html><body><p>About us</p></body></html>"
	f.errs["https://example.com/slow"] = context.DeadlineExceeded
	s := newTestService(t, f, nil)

	tests := []struct {
		name string
		url  string
		want error
	}{
		{"ftp scheme", "ftp://example.com/recipe", common.ErrInvalidURL},
		{"no host", "https://", common.ErrInvalidURL},
		{"fetch failure", "https://example.com/missing", common.ErrFetchFailed},
		{"timeout", "https://example.com/slow", common.ErrGatewayTimeout},
		{"empty page", "https://example.com/empty", common.ErrNoSteps},
		{"no steps", "https://example.com/prose", common.ErrNoSteps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe, err := s.ImportURL(context.Background(), tt.url)
			assert.Nil(t, recipe)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestImportURLUsesCache(t *testing.T) {
	f := newFakeFetcher()
	f.pages["https://example.com/pancakes"] = pancakePage
	store := cache.NewMemoryStore(config.CacheConfig{MaxSize: 10, TTL: time.Minute})
	defer store.Close()
	s := newTestService(t, f, store)

	first, err := s.ImportURL(context.Background(), "https://example.com/pancakes")
	require.NoError(t, err)
	second, err := s.ImportURL(context.Background(), "https://example.com/pancakes")
	require.NoError(t, err)

	assert.Equal(t, 1, f.callCount("https://example.com/pancakes"))
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Steps[1].TimerMinutes, second.Steps[1].TimerMinutes)
	assert.Equal(t, first.Ingredients, second.Ingredients)
}

func TestImportBatchKeepsOrder(t *testing.T) {
	f := newFakeFetcher()
	f.pages["https://example.com/pancakes"] = pancakePage
	s := newTestService(t, f, nil)

	urls := []string{
		"https://example.com/pancakes",
		"not a url",
		"https://example.com/missing",
		"https://example.com/pancakes?again=1",
	}
	f.pages["https://example.com/pancakes?again=1"] = pancakePage

	results := s.ImportBatch(context.Background(), urls)
	require.Len(t, results, len(urls))

	for i, r := range results {
		assert.Equal(t, urls[i], r.URL)
	}
	require.NoError(t, results[0].Err)
	assert.Equal(t, "Pancakes", results[0].Recipe.Title)
	assert.ErrorIs(t, results[1].Err, common.ErrInvalidURL)
	assert.ErrorIs(t, results[2].Err, common.ErrFetchFailed)
	require.NoError(t, results[3].Err)

	assert.Equal(t, int64(4), s.QueueStatus().ProcessedCount)
}

func TestQueueRejectsWhenFull(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	q := NewQueue(config.QueueConfig{Workers: 1, MaxSize: 1}, func(ctx context.Context, url string) (*parser.ParsedRecipe, error) {
		started <- struct{}{}
		<-release
		return &parser.ParsedRecipe{Title: url}, nil
	})
	q.Start()
	defer q.Close()

	ctx := context.Background()
	first, err := q.Enqueue(ctx, "a")
	require.NoError(t, err)
	<-started

	second, err := q.Enqueue(ctx, "b")
	require.NoError(t, err)

	_, err = q.Enqueue(ctx, "c")
	assert.ErrorIs(t, err, common.ErrQueueFull)

	close(release)
	assert.Equal(t, "a", q.Wait(ctx, "a", first).Recipe.Title)
	<-started
	assert.Equal(t, "b", q.Wait(ctx, "b", second).Recipe.Title)
}

func TestQueueClosed(t *testing.T) {
	q := NewQueue(config.QueueConfig{Workers: 1, MaxSize: 1}, func(ctx context.Context, url string) (*parser.ParsedRecipe, error) {
		return nil, nil
	})
	q.Start()
	q.Close()

	_, err := q.Enqueue(context.Background(), "a")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}
