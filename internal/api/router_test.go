package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	recipeHandler "batch-maker/internal/api/handlers/recipe"
	recipeService "batch-maker/internal/core/recipe"
	"batch-maker/internal/core/recipe/parser"
	"batch-maker/internal/core/workflow"
	"batch-maker/internal/infrastructure/config"
	"batch-maker/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const soupPage = `<html><head><script type="application/ld+json">
{"@type": "Recipe", "name": "Tomato Soup", "recipeIngredient": ["4 tomatoes", "1 tsp salt"],
 "recipeInstructions": [{"@type": "HowToStep", "text": "Simmer the tomatoes for 20 minutes"}]}
</script></head><body></body></html>`

type pageFetcher map[string]string

func (p pageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	page, ok := p[url]
	if !ok {
		return "", fmt.Errorf("unreachable %s", url)
	}
	return page, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Version: "test"},
		Server: config.ServerConfig{
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
			AllowOrigins:   []string{"*"},
		},
		Queue:       config.QueueConfig{Workers: 2, MaxSize: 3},
		RateLimit:   config.RateLimitConfig{Enabled: false},
		DedupWindow: time.Millisecond,
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	importer := recipeService.NewImportService(pageFetcher{"https://example.com/soup": soupPage}, nil, cfg.Queue)
	t.Cleanup(importer.Close)

	converter := workflow.NewConverter(func() time.Time { return time.UnixMilli(42) })
	return SetupRouter(cfg, Services{Importer: importer, Converter: converter})
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealthRoutes(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	var health map[string]interface{}
	decode(t, do(r, http.MethodGet, "/health", ""), &health)
	assert.Equal(t, "test", health["version"])
	assert.Equal(t, "disabled", health["cache"])
	assert.NotNil(t, health["queue"])
}

func TestParseText(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/recipes/parse/text", `{"text":"Banana Bread\n2 cups flour\n1. Preheat oven to 350F"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var recipe parser.ParsedRecipe
	decode(t, w, &recipe)
	assert.Equal(t, "Banana Bread", recipe.Title)
	require.Len(t, recipe.Steps, 1)
	assert.Equal(t, "350°F", recipe.Steps[0].Temperature)
}

func TestParseTextEmpty(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/recipes/parse/text", `{"text":"   "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp common.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, common.ErrCodeEmptyRecipe, resp.Code)
	assert.Equal(t, common.ImportFailedMessage, resp.Message)
	assert.Empty(t, resp.Details, "details only in debug mode")
}

func TestParseURL(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/recipes/parse/url", `{"url":"https://example.com/soup"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var recipe parser.ParsedRecipe
	decode(t, w, &recipe)
	assert.Equal(t, "Tomato Soup", recipe.Title)
	assert.Equal(t, 20, recipe.Steps[0].TimerMinutes)

	w = do(r, http.MethodPost, "/api/v1/recipes/parse/url", `{"url":"ftp://example.com/soup"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/recipes/parse/url", `{"url":"https://example.com/down"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = do(r, http.MethodPost, "/api/v1/recipes/parse/url", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImport(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/recipes/import", `{"url":"https://example.com/soup"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp recipeHandler.ImportResponse
	decode(t, w, &resp)
	assert.Equal(t, "Tomato Soup", resp.Recipe.Title)
	assert.Equal(t, "tomato_soup_42", resp.Workflow.ID)
	require.Len(t, resp.Workflow.Steps, 1)
	assert.Equal(t, "tomato_soup_42_step_1", resp.Workflow.Steps[0].ID)
	assert.Equal(t, 20, resp.Workflow.Steps[0].TimerMinutes)

	for _, body := range []string{`{}`, `{"url":"https://example.com/soup","text":"Soup"}`} {
		w = do(r, http.MethodPost, "/api/v1/recipes/import", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestImportBatch(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/recipes/import/batch", `{"urls":["https://example.com/soup","https://example.com/down"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp recipeHandler.BatchResponse
	decode(t, w, &resp)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "https://example.com/soup", resp.Results[0].URL)
	assert.NotNil(t, resp.Results[0].Workflow)
	assert.Nil(t, resp.Results[0].Error)
	require.NotNil(t, resp.Results[1].Error)
	assert.Equal(t, common.ErrCodeFetchFailed, resp.Results[1].Error.Code)

	w = do(r, http.MethodPost, "/api/v1/recipes/import/batch", `{"urls":["a","b","c","d"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/recipes/import/batch", `{"urls":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConvertWorkflow(t *testing.T) {
	r := newTestRouter(t)

	body := `{"title":"Tea","steps":[{"number":1,"title":"Steep","instructions":"Steep for 3 minutes","timerMinutes":3,
	  "ingredients":[{"name":"tea","amount":"1","unit":"tsp","fullText":"1 tsp tea"}]}]}`
	w := do(r, http.MethodPost, "/api/v1/workflows/convert", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var wf workflow.Workflow
	decode(t, w, &wf)
	assert.Equal(t, "tea_42", wf.ID)
	require.Len(t, wf.Steps, 1)
	assert.Equal(t, "Steep for 3 minutes\n\n📋 Checklist:\n☐ 1 tsp tea", wf.Steps[0].Description)

	w = do(r, http.MethodPost, "/api/v1/workflows/convert", `{"title":"Empty","steps":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodPost, "/api/v1/workflows/convert", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
