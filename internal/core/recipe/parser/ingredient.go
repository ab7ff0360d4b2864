package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// 帶分數要放在最前面，否則 "1 1/2" 只會吃到 "1"
var amountPattern = regexp.MustCompile(`^(\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?|[½⅓⅔¼¾⅛])`)

// ParseIngredient 將一行食材拆成數量、單位與名稱
//
// 找不到數量或單位不算錯誤，此時 Name 退回整行文字。
func ParseIngredient(line string) ParsedIngredient {
	cleaned := strings.TrimSpace(line)
	remaining := cleaned

	var amount string
	if m := amountPattern.FindString(cleaned); m != "" {
		amount = strings.TrimSpace(m)
		remaining = strings.TrimSpace(cleaned[len(m):])
	}

	var unit string
	if fields := strings.Fields(remaining); len(fields) > 0 {
		if u, ok := unitOf(fields[0]); ok {
			unit = u
			remaining = strings.TrimSpace(remaining[len(fields[0]):])
		}
	}

	name := remaining
	if name == "" {
		name = cleaned
	}

	return ParsedIngredient{
		Name:     name,
		Amount:   amount,
		Unit:     unit,
		FullText: cleaned,
	}
}

// IsIngredientLine 判斷一行是否為食材：數字開頭，或行中有獨立的單位字
func IsIngredientLine(line string) bool {
	line = strings.TrimSpace(line)
	return startsWithDigit(line) || containsUnitToken(line)
}

func startsWithDigit(line string) bool {
	for _, r := range line {
		return unicode.IsDigit(r)
	}
	return false
}

// containsUnitToken 單位字後面必須還有其他 token，且不去標點，
// 避免 "Serve with a slice." 這類句子被當成食材
func containsUnitToken(line string) bool {
	fields := strings.Fields(line)
	for i := 0; i+1 < len(fields); i++ {
		if isBareUnit(fields[i]) {
			return true
		}
	}
	return false
}
