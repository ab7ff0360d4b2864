package parser

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrEmptyText 輸入去除空行後沒有任何內容
var ErrEmptyText = errors.New("empty recipe text")

// minLineLength 更短的行視為排版符號（"--"、"*"）直接略過
const minLineLength = 3

// ParseText 逐行組出食譜：第一行是標題，其餘行依序分類為步驟標題、食材或說明文字
//
// 零步驟的結果不會在這裡被拒絕，由呼叫端決定是否視為失敗。
func ParseText(text string) (*ParsedRecipe, error) {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return nil, ErrEmptyText
	}

	recipe := &ParsedRecipe{
		Title:       lines[0],
		Ingredients: []ParsedIngredient{},
		Steps:       []ParsedStep{},
	}
	seen := make(map[string]struct{})

	var current *ParsedStep
	stepNumber := 0

	for _, line := range lines[1:] {
		if utf8.RuneCountInString(line) < minLineLength {
			continue
		}

		switch {
		case IsStepHeader(line):
			if current != nil {
				recipe.Steps = append(recipe.Steps, *current)
			}
			stepNumber++
			current = newStep(stepNumber, stepTitle(line, stepNumber))
			current.applyExtractions(line)

		case IsIngredientLine(line):
			ingredient := ParseIngredient(line)
			if _, dup := seen[ingredient.FullText]; !dup {
				seen[ingredient.FullText] = struct{}{}
				recipe.Ingredients = append(recipe.Ingredients, ingredient)
			}
			if current != nil {
				current.Ingredients = append(current.Ingredients, ingredient)
			}

		case current != nil:
			if current.Instructions == "" {
				current.Instructions = line
			} else {
				current.Instructions += "\n" + line
			}
			current.applyExtractions(line)

		default:
			// 還沒有步驟就遇到說明文字：短行當標題，長行當內容
			stepNumber++
			if utf8.RuneCountInString(line) < shortLineLimit {
				current = newStep(stepNumber, line)
			} else {
				current = newStep(stepNumber, "Preparation")
				current.Instructions = line
			}
			current.applyExtractions(line)
		}
	}

	if current != nil {
		recipe.Steps = append(recipe.Steps, *current)
	}

	return recipe, nil
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
