package workflow

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"batch-maker/internal/core/recipe/parser"
)

// Workflow 產品端的工作流程（食譜/SOP）
type Workflow struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// Step 工作流程中的單一步驟
type Step struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	TimerMinutes int    `json:"timerMinutes,omitempty" yaml:"timerMinutes,omitempty"`
	Completed    bool   `json:"completed" yaml:"completed"`
}

const (
	checklistHeader = "📋 Checklist:"
	checkboxGlyph   = "☐"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Converter 將 ParsedRecipe 轉成 Workflow
type Converter struct {
	now func() time.Time
}

// NewConverter 創建轉換器，now 為 nil 時使用 time.Now
func NewConverter(now func() time.Time) *Converter {
	if now == nil {
		now = time.Now
	}
	return &Converter{now: now}
}

// Convert 產生工作流程：id 為 slug(title)_毫秒時間戳，每個步驟附上溫度與食材清單
func (c *Converter) Convert(recipe *parser.ParsedRecipe) *Workflow {
	id := Slug(recipe.Title) + "_" + fmt.Sprint(c.now().UnixMilli())

	steps := make([]Step, 0, len(recipe.Steps))
	for i, step := range recipe.Steps {
		steps = append(steps, Step{
			ID:           fmt.Sprintf("%s_step_%d", id, i+1),
			Title:        step.Title,
			Description:  Describe(step),
			TimerMinutes: step.TimerMinutes,
			Completed:    false,
		})
	}

	return &Workflow{
		ID:    id,
		Name:  recipe.Title,
		Steps: steps,
	}
}

// Slug 小寫並把連續空白換成底線
func Slug(title string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "_")
}

// Describe 組出步驟描述：說明文字、目標溫度、食材勾選清單
func Describe(step parser.ParsedStep) string {
	var sb strings.Builder
	sb.WriteString(step.Instructions)

	if step.Temperature != "" {
		sb.WriteString("\n\nTarget Temperature: ")
		sb.WriteString(step.Temperature)
	}

	if len(step.Ingredients) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(checklistHeader)
		sb.WriteString("\n")
		for i, ing := range step.Ingredients {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(checkboxGlyph + " " + ing.FullText)
		}
	}

	return strings.TrimSpace(sb.String())
}
