package parser

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// 這些元素的內容不是頁面上看得到的文字
var hiddenElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// jsonLDBlocks 依文件順序取出所有 application/ld+json 區塊的內容
//
// 必須在移除 <script> 之前執行，JSON-LD 本身就放在 <script> 裡。
func jsonLDBlocks(doc string) []string {
	var blocks []string
	z := html.NewTokenizer(strings.NewReader(doc))
	inJSONLD := false

	for {
		switch z.Next() {
		case html.ErrorToken:
			return blocks
		case html.StartTagToken:
			tok := z.Token()
			inJSONLD = tok.DataAtom == atom.Script && isJSONLDType(attr(tok, "type"))
		case html.TextToken:
			if inJSONLD {
				if body := strings.TrimSpace(string(z.Raw())); body != "" {
					blocks = append(blocks, body)
				}
			}
		case html.EndTagToken:
			inJSONLD = false
		}
	}
}

func isJSONLDType(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	return strings.HasPrefix(contentType, "application/ld+json")
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// VisibleText 去掉 script/style 後，把每個標籤換成換行並還原 HTML entity
//
// 空白行會被壓掉，每行前後空白也會去除。
func VisibleText(doc string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(doc))
	hidden := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			if hiddenElements[atom.Lookup(name)] {
				hidden++
			}
			sb.WriteByte('\n')
		case html.EndTagToken:
			name, _ := z.TagName()
			if hiddenElements[atom.Lookup(name)] && hidden > 0 {
				hidden--
			}
			sb.WriteByte('\n')
		case html.SelfClosingTagToken:
			sb.WriteByte('\n')
		case html.TextToken:
			if hidden == 0 {
				// Text() 已經還原過 entity
				sb.WriteString(strings.ReplaceAll(string(z.Text()), "\u00a0", " "))
			}
		}
	}

	return strings.Join(nonEmptyLines(sb.String()), "\n")
}

// ParseHTML 優先採用頁面中的 JSON-LD，找不到時退回可見文字的逐行解析
func ParseHTML(doc, sourceURL string) (*ParsedRecipe, error) {
	if recipe, ok := ExtractStructured(doc, sourceURL); ok {
		return recipe, nil
	}

	recipe, err := ParseText(VisibleText(doc))
	if err != nil {
		return nil, err
	}
	recipe.Source = sourceURL
	return recipe, nil
}
