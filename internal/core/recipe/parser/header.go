package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// shortLineLimit 短於此長度的行才可能是冒號標題或直接當步驟標題
const shortLineLimit = 60

var (
	// "1." 後面不能接數字，避免 "1.5 cups" 被當成編號（見 DESIGN.md 決策 8）
	numberedPattern  = regexp.MustCompile(`^\d+(?:\)|\.(?:\D|$))`)
	stepWordPattern  = regexp.MustCompile(`(?i)^step\s+\d+`)
	numberingPrefix  = regexp.MustCompile(`^\d+[.)]\s*`)
	stepWordPrefix   = regexp.MustCompile(`(?i)^step\s+\d+[:.)]?\s*`)
	trailingColonPat = regexp.MustCompile(`:\s*$`)
)

// IsStepHeader 判斷一行是否開啟新步驟，任一訊號成立即可
func IsStepHeader(line string) bool {
	line = strings.TrimSpace(line)
	return isNumberedHeader(line) || isColonHeader(line) || startsWithCookingVerb(line)
}

func isNumberedHeader(line string) bool {
	return numberedPattern.MatchString(line) || stepWordPattern.MatchString(line)
}

func isColonHeader(line string) bool {
	return utf8.RuneCountInString(line) < shortLineLimit && strings.HasSuffix(line, ":")
}

func startsWithCookingVerb(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && IsCookingVerb(fields[0])
}

// stepTitle 去掉編號、"Step N:" 前綴與結尾冒號
func stepTitle(line string, number int) string {
	title := numberingPrefix.ReplaceAllString(line, "")
	title = stepWordPrefix.ReplaceAllString(title, "")
	title = strings.TrimSpace(trailingColonPat.ReplaceAllString(title, ""))
	if title == "" {
		return fmt.Sprintf("Step %d", number)
	}
	return title
}
