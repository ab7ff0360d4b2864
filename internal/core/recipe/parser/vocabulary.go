package parser

import "strings"

// wordSet 唯讀字彙表，只在套件初始化時建立
type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	set := make(wordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func (s wordSet) has(word string) bool {
	_, ok := s[word]
	return ok
}

var unitWords = newWordSet(
	"g", "kg", "mg", "gram", "grams", "kilogram", "kilograms",
	"ml", "l", "milliliter", "milliliters", "liter", "liters",
	"oz", "lb", "ounce", "ounces", "pound", "pounds",
	"cup", "cups", "tablespoon", "tablespoons", "tbsp", "tbs", "tb",
	"teaspoon", "teaspoons", "tsp", "ts",
	"pinch", "dash", "handful", "piece", "pieces",
	"can", "cans", "package", "packages", "pkg",
	"clove", "cloves", "stick", "sticks",
	"slice", "slices", "sheet", "sheets",
)

var cookingVerbs = newWordSet(
	"mix", "stir", "whisk", "beat", "fold", "knead", "blend",
	"heat", "boil", "simmer", "cook", "bake", "roast", "grill", "fry",
	"add", "combine", "pour", "place", "spread", "cover",
	"let", "allow", "wait", "rest", "rise", "proof",
	"cut", "chop", "dice", "slice", "mince", "grate",
	"preheat", "prepare", "season", "garnish",
)

const tokenPunctuation = ",.;:!?()"

// normalizeToken 小寫並去掉常見標點，"Tbsp." -> "tbsp"
func normalizeToken(token string) string {
	return strings.Trim(strings.ToLower(token), tokenPunctuation)
}

// unitOf 判斷 token 是否為單位（原樣或去掉結尾 s），回傳正規化後的 token
func unitOf(token string) (string, bool) {
	word := normalizeToken(token)
	if word == "" {
		return "", false
	}
	if unitWords.has(word) {
		return word, true
	}
	if strings.HasSuffix(word, "s") && unitWords.has(strings.TrimSuffix(word, "s")) {
		return word, true
	}
	return "", false
}

// isBareUnit 與 unitOf 相同，但不去掉標點
func isBareUnit(token string) bool {
	word := strings.ToLower(token)
	return unitWords.has(word) || (strings.HasSuffix(word, "s") && unitWords.has(strings.TrimSuffix(word, "s")))
}

// IsUnitWord 回報 token 是否為已知的計量單位
func IsUnitWord(token string) bool {
	_, ok := unitOf(token)
	return ok
}

// IsCookingVerb 回報 word 是否為步驟開頭常見的烹飪動詞
func IsCookingVerb(word string) bool {
	return cookingVerbs.has(normalizeToken(word))
}
