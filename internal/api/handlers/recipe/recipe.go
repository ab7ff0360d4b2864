package recipe

import (
	"context"
	"net/http"
	"strings"

	"batch-maker/internal/api/handlers"
	recipeService "batch-maker/internal/core/recipe"
	"batch-maker/internal/core/recipe/parser"
	"batch-maker/internal/core/workflow"
	"batch-maker/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Importer 匯入服務
type Importer interface {
	ImportText(ctx context.Context, text string) (*parser.ParsedRecipe, error)
	ImportURL(ctx context.Context, url string) (*parser.ParsedRecipe, error)
	ImportBatch(ctx context.Context, urls []string) []recipeService.BatchResult
}

// ParseTextRequest 解析貼上的食譜文字
type ParseTextRequest struct {
	Text string `json:"text"`
}

// ParseURLRequest 解析食譜網址
type ParseURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// ImportRequest 匯入並轉成工作流程，url 與 text 擇一
type ImportRequest struct {
	URL  string `json:"url,omitempty"`
	Text string `json:"text,omitempty"`
}

// ImportResponse 匯入結果
type ImportResponse struct {
	Recipe   *parser.ParsedRecipe `json:"recipe"`
	Workflow *workflow.Workflow   `json:"workflow"`
}

// BatchRequest 批次匯入
type BatchRequest struct {
	URLs []string `json:"urls" binding:"required,min=1"`
}

// BatchItem 批次中單一網址的結果
type BatchItem struct {
	URL      string                `json:"url"`
	Recipe   *parser.ParsedRecipe  `json:"recipe,omitempty"`
	Workflow *workflow.Workflow    `json:"workflow,omitempty"`
	Error    *common.ErrorResponse `json:"error,omitempty"`
}

// BatchResponse 批次匯入結果，順序與請求一致
type BatchResponse struct {
	Results []BatchItem `json:"results"`
}

// Handler 食譜匯入處理器
type Handler struct {
	importer  Importer
	converter *workflow.Converter
	maxBatch  int
	debug     bool
}

// NewHandler 創建食譜匯入處理器
func NewHandler(importer Importer, converter *workflow.Converter, maxBatch int, debug bool) *Handler {
	return &Handler{
		importer:  importer,
		converter: converter,
		maxBatch:  maxBatch,
		debug:     debug,
	}
}

// HandleParseText POST /recipes/parse/text
func (h *Handler) HandleParseText(c *gin.Context) {
	var req ParseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, common.ErrInvalidRequest.Wrap(err), "", h.debug)
		return
	}

	recipe, err := h.importer.ImportText(c.Request.Context(), req.Text)
	if err != nil {
		handlers.RespondError(c, err, common.ImportFailedMessage, h.debug)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// HandleParseURL POST /recipes/parse/url
func (h *Handler) HandleParseURL(c *gin.Context) {
	var req ParseURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, common.ErrInvalidRequest.Wrap(err), "", h.debug)
		return
	}

	recipe, err := h.importer.ImportURL(c.Request.Context(), req.URL)
	if err != nil {
		handlers.RespondError(c, err, common.ImportFailedMessage, h.debug)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// HandleImport POST /recipes/import
func (h *Handler) HandleImport(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, common.ErrInvalidRequest.Wrap(err), "", h.debug)
		return
	}

	hasURL := strings.TrimSpace(req.URL) != ""
	hasText := strings.TrimSpace(req.Text) != ""
	if hasURL == hasText {
		handlers.RespondError(c, common.ErrInvalidRequest, "Provide either url or text", h.debug)
		return
	}

	var (
		recipe *parser.ParsedRecipe
		err    error
	)
	if hasURL {
		recipe, err = h.importer.ImportURL(c.Request.Context(), req.URL)
	} else {
		recipe, err = h.importer.ImportText(c.Request.Context(), req.Text)
	}
	if err != nil {
		handlers.RespondError(c, err, common.ImportFailedMessage, h.debug)
		return
	}

	c.JSON(http.StatusOK, ImportResponse{
		Recipe:   recipe,
		Workflow: h.converter.Convert(recipe),
	})
}

// HandleImportBatch POST /recipes/import/batch
func (h *Handler) HandleImportBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, common.ErrInvalidRequest.Wrap(err), "", h.debug)
		return
	}
	if h.maxBatch > 0 && len(req.URLs) > h.maxBatch {
		handlers.RespondError(c, common.ErrInvalidRequest, "Too many urls in one batch", h.debug)
		return
	}

	results := h.importer.ImportBatch(c.Request.Context(), req.URLs)

	items := make([]BatchItem, len(results))
	for i, r := range results {
		items[i].URL = r.URL
		if r.Err != nil {
			items[i].Error = handlers.ErrorBody(r.Err, common.ImportFailedMessage, h.debug)
			continue
		}
		items[i].Recipe = r.Recipe
		items[i].Workflow = h.converter.Convert(r.Recipe)
	}

	c.JSON(http.StatusOK, BatchResponse{Results: items})
}
