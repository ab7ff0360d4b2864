package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const timeUnits = `(minutes|minute|mins|min|hours|hour|hrs|hr)\b`

var (
	timeRangePattern  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:to|-|–)\s*(\d+(?:\.\d+)?)\s*` + timeUnits)
	timeSinglePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*` + timeUnits)

	// 單位字母後必須是字詞邊界，"2 cups" 不會被當成 2°C
	temperaturePattern = regexp.MustCompile(`(?i)(\d+)\s*(?:°|º|degrees?)?\s*([CF])\b`)
)

// ExtractTime 從文字中找出時間並換算成分鐘
//
// 範圍（"30-45 minutes"）優先，只取下限；小時乘以 60 後四捨五入。
func ExtractTime(text string) (int, bool) {
	for _, pattern := range []*regexp.Regexp{timeRangePattern, timeSinglePattern} {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		unit := strings.ToLower(m[len(m)-1])
		if strings.HasPrefix(unit, "h") {
			value *= 60
		}
		return int(math.Round(value)), true
	}
	return 0, false
}

// ExtractTemperature 找出溫度並正規化為 "350°F" 形式
func ExtractTemperature(text string) (string, bool) {
	m := temperaturePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1] + "°" + strings.ToUpper(m[2]), true
}
