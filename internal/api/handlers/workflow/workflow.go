package workflow

import (
	"net/http"

	"batch-maker/internal/api/handlers"
	"batch-maker/internal/core/recipe/parser"
	"batch-maker/internal/core/workflow"
	"batch-maker/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler 工作流程轉換處理器
type Handler struct {
	converter *workflow.Converter
	debug     bool
}

// NewHandler 創建工作流程轉換處理器
func NewHandler(converter *workflow.Converter, debug bool) *Handler {
	return &Handler{converter: converter, debug: debug}
}

// HandleConvert POST /workflows/convert，請求內容為 ParsedRecipe
func (h *Handler) HandleConvert(c *gin.Context) {
	var recipe parser.ParsedRecipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		handlers.RespondError(c, common.ErrInvalidRequest.Wrap(err), "", h.debug)
		return
	}
	if len(recipe.Steps) == 0 {
		handlers.RespondError(c, common.ErrNoSteps, "Recipe has no steps", h.debug)
		return
	}

	c.JSON(http.StatusOK, h.converter.Convert(&recipe))
}
