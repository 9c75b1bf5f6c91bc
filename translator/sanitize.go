package translator

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// 目标正字法里合法的组合符号：尖音符、波浪符、分音符。
// 提供商偶尔会往译文里塞注音或生僻变音符，渲染出来就是乱码。
var allowedCombiningMarks = map[rune]bool{
	0x0301: true, // ́  acute
	0x0303: true, // ̃  tilde
	0x0308: true, // ̈  diaeresis
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// CleanTranslatedText 清理提供商返回的译文：
// NFD 分解后只保留白名单内的组合符号，重新组合，
// 再剔除目标文字允许范围外的字符，折叠空白。幂等。
func CleanTranslatedText(text string) string {
	decomposed := norm.NFD.String(text)

	var filtered strings.Builder
	filtered.Grow(len(decomposed))

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			if allowedCombiningMarks[r] {
				filtered.WriteRune(r)
			}
			continue
		}
		filtered.WriteRune(r)
	}

	recomposed := norm.NFC.String(filtered.String())

	// 范围外字符替换为空格，保留换行以维持段落结构
	var out strings.Builder
	out.Grow(len(recomposed))

	for _, r := range recomposed {
		switch {
		case r == '\n':
			out.WriteRune(r)
		case printableLatin(r):
			out.WriteRune(r)
		default:
			out.WriteByte(' ')
		}
	}

	return collapseWhitespace(out.String())
}

// printableLatin 可打印 ASCII、Latin-1 补充和 Latin Extended-A
func printableLatin(r rune) bool {
	if r >= 0x20 && r <= 0x7E {
		return true
	}
	return r >= 0xA1 && r <= 0x17F
}

// collapseWhitespace 行内空白折叠为单个空格，
// 连续空行折叠为一个段落分隔
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}

	joined := strings.Join(lines, "\n")
	joined = excessNewlines.ReplaceAllString(joined, "\n\n")

	return strings.TrimSpace(joined)
}
