// Package parser 將自由文字或食譜網頁轉成與產品無關的 ParsedRecipe。
//
// 所有函式都是純函式：每次呼叫各自配置結果，不共用可變狀態，可安全並行呼叫。
package parser

// ParsedIngredient 解析後的食材行，FullText 永遠是去除前後空白的原始行
type ParsedIngredient struct {
	Name     string `json:"name" yaml:"name"`
	Amount   string `json:"amount,omitempty" yaml:"amount,omitempty"`
	Unit     string `json:"unit,omitempty" yaml:"unit,omitempty"`
	FullText string `json:"fullText" yaml:"fullText"`
}

// ParsedStep 解析後的步驟，Number 從 1 開始連續編號
type ParsedStep struct {
	Number       int                `json:"number" yaml:"number"`
	Title        string             `json:"title" yaml:"title"`
	Instructions string             `json:"instructions" yaml:"instructions"`
	Ingredients  []ParsedIngredient `json:"ingredients" yaml:"ingredients"`
	TimerMinutes int                `json:"timerMinutes,omitempty" yaml:"timerMinutes,omitempty"` // 0 表示未偵測到時間
	Temperature  string             `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// ParsedRecipe 解析結果
type ParsedRecipe struct {
	Title       string             `json:"title" yaml:"title"`
	Source      string             `json:"source,omitempty" yaml:"source,omitempty"`
	PrepTime    string             `json:"prepTime,omitempty" yaml:"prepTime,omitempty"`
	CookTime    string             `json:"cookTime,omitempty" yaml:"cookTime,omitempty"`
	TotalTime   string             `json:"totalTime,omitempty" yaml:"totalTime,omitempty"`
	Servings    string             `json:"servings,omitempty" yaml:"servings,omitempty"`
	Ingredients []ParsedIngredient `json:"ingredients" yaml:"ingredients"`
	Steps       []ParsedStep       `json:"steps" yaml:"steps"`
}

func newStep(number int, title string) *ParsedStep {
	return &ParsedStep{
		Number:      number,
		Title:       title,
		Ingredients: []ParsedIngredient{},
	}
}

// applyExtractions 只在步驟尚未有時間/溫度時才填入
func (s *ParsedStep) applyExtractions(text string) {
	if s.TimerMinutes == 0 {
		if minutes, ok := ExtractTime(text); ok {
			s.TimerMinutes = minutes
		}
	}
	if s.Temperature == "" {
		if temp, ok := ExtractTemperature(text); ok {
			s.Temperature = temp
		}
	}
}
