package parser

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"batch-maker/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const defaultImportedTitle = "Imported Recipe"

// ldObject 是 JSON-LD 中的單一節點
type ldObject map[string]any

// ldDocument 是一個 ld+json 區塊解碼後可能出現的形狀
type ldDocument interface{ candidates() []ldObject }

type (
	ldSingle ldObject   // {"@type": "Recipe", ...}
	ldList   []ldObject // [{...}, {...}]
	ldGraph  struct {   // {"@context": ..., "@graph": [...]}
		root  ldObject
		nodes []ldObject
	}
)

func (d ldSingle) candidates() []ldObject { return []ldObject{ldObject(d)} }
func (d ldList) candidates() []ldObject   { return d }
func (d ldGraph) candidates() []ldObject  { return append([]ldObject{d.root}, d.nodes...) }

// instruction 是 recipeInstructions 中的一個元素
type instruction interface{ isInstruction() }

type (
	textInstruction string
	howToStep       struct{ name, text string }
	howToSection    struct {
		name  string
		steps []instruction
	}
)

func (textInstruction) isInstruction() {}
func (howToStep) isInstruction()       {}
func (howToSection) isInstruction()    {}

// ExtractStructured 從頁面嵌入的 schema.org Recipe JSON-LD 建立食譜
//
// 沒有 JSON-LD、JSON 格式錯誤或不是 Recipe 時回傳 false，呼叫端應改走純文字解析。
func ExtractStructured(doc, sourceURL string) (*ParsedRecipe, bool) {
	for _, block := range jsonLDBlocks(doc) {
		parsed, err := decodeLDDocument(block)
		if err != nil {
			common.LogDebug("Skipping malformed JSON-LD block",
				zap.String("source", sourceURL),
				zap.Error(err),
			)
			continue
		}
		for _, node := range parsed.candidates() {
			if isRecipeNode(node) {
				return recipeFromLD(node, sourceURL), true
			}
		}
	}
	return nil, false
}

func decodeLDDocument(block string) (ldDocument, error) {
	var raw any
	if err := common.ParseJSON(block, &raw); err != nil {
		return nil, err
	}

	switch v := raw.(type) {
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			return ldGraph{root: v, nodes: objects(graph)}, nil
		}
		return ldSingle(v), nil
	case []any:
		return ldList(objects(v)), nil
	default:
		return nil, fmt.Errorf("unexpected JSON-LD top level %T", raw)
	}
}

func objects(values []any) []ldObject {
	out := make([]ldObject, 0, len(values))
	for _, v := range values {
		if obj, ok := v.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// typeOf 取出 @type，可能是字串或字串陣列
func typeOf(node ldObject) []string {
	switch t := node["@type"].(type) {
	case string:
		return []string{t}
	case []any:
		types := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				types = append(types, s)
			}
		}
		return types
	default:
		return nil
	}
}

func hasType(node ldObject, want string) bool {
	for _, t := range typeOf(node) {
		if t == want {
			return true
		}
	}
	return false
}

func isRecipeNode(node ldObject) bool {
	return hasType(node, "Recipe")
}

func recipeFromLD(node ldObject, sourceURL string) *ParsedRecipe {
	title := cleanText(stringField(node, "name"))
	if title == "" {
		title = defaultImportedTitle
	}

	recipe := &ParsedRecipe{
		Title:       title,
		Source:      sourceURL,
		PrepTime:    stringField(node, "prepTime"),
		CookTime:    stringField(node, "cookTime"),
		TotalTime:   stringField(node, "totalTime"),
		Servings:    yieldOf(node["recipeYield"]),
		Ingredients: []ParsedIngredient{},
		Steps:       []ParsedStep{},
	}

	for _, line := range stringList(node["recipeIngredient"]) {
		if line = cleanText(line); line != "" {
			recipe.Ingredients = append(recipe.Ingredients, ParseIngredient(line))
		}
	}

	number := 0
	var emit func(ins instruction)
	emit = func(ins instruction) {
		switch v := ins.(type) {
		case textInstruction:
			text := cleanText(string(v))
			if text == "" {
				return
			}
			number++
			title := text
			if utf8.RuneCountInString(text) >= shortLineLimit {
				title = fmt.Sprintf("Step %d", number)
			}
			recipe.Steps = append(recipe.Steps, structuredStep(number, title, text))
		case howToStep:
			text, name := cleanText(v.text), cleanText(v.name)
			if text == "" && name == "" {
				return
			}
			number++
			if name == "" {
				name = fmt.Sprintf("Step %d", number)
			}
			recipe.Steps = append(recipe.Steps, structuredStep(number, name, text))
		case howToSection:
			for _, step := range v.steps {
				emit(step)
			}
		}
	}
	for _, ins := range decodeInstructions(node["recipeInstructions"]) {
		emit(ins)
	}

	return recipe
}

func structuredStep(number int, title, text string) ParsedStep {
	step := newStep(number, title)
	step.Instructions = text
	step.applyExtractions(text)
	return *step
}

// decodeInstructions 把 recipeInstructions 的各種寫法轉成 instruction
func decodeInstructions(value any) []instruction {
	switch v := value.(type) {
	case string:
		// 整段字串：每行一個步驟
		var out []instruction
		for _, line := range nonEmptyLines(v) {
			out = append(out, textInstruction(line))
		}
		return out
	case map[string]any:
		if ins, ok := decodeInstruction(v); ok {
			return []instruction{ins}
		}
		return nil
	case []any:
		out := make([]instruction, 0, len(v))
		for _, item := range v {
			if ins, ok := decodeInstruction(item); ok {
				out = append(out, ins)
			}
		}
		return out
	default:
		return nil
	}
}

func decodeInstruction(value any) (instruction, bool) {
	switch v := value.(type) {
	case string:
		return textInstruction(v), true
	case map[string]any:
		node := ldObject(v)
		switch {
		case hasType(node, "HowToSection"):
			return howToSection{
				name:  stringField(node, "name"),
				steps: decodeInstructions(node["itemListElement"]),
			}, true
		case hasType(node, "HowToStep"), node["@type"] == nil && node["text"] != nil:
			return howToStep{
				name: stringField(node, "name"),
				text: stringField(node, "text"),
			}, true
		}
	}
	return nil, false
}

func stringField(node ldObject, key string) string {
	switch v := node[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func stringList(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// yieldOf recipeYield 可能是字串、數字或陣列，陣列取第一個
func yieldOf(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case []any:
		if len(v) > 0 {
			return yieldOf(v[0])
		}
	}
	return ""
}

// cleanText 還原 JSON-LD 字串裡殘留的 HTML entity，有標籤時只留可見文字
func cleanText(s string) string {
	s = html.UnescapeString(s)
	if strings.ContainsRune(s, '<') {
		s = strings.Join(strings.Fields(VisibleText(s)), " ")
	}
	return strings.TrimSpace(s)
}
