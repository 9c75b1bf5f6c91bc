package extractor

import "strings"

// isPrintable 判断字符是否在允许范围内：
// 可打印 ASCII、Latin-1 补充（0xA1 起）和 Latin Extended-A。
// PDF 里常混入的注音、私有区等隐藏字符都会被剔除。
func isPrintable(r rune) bool {
	if r >= 0x20 && r <= 0x7E {
		return true
	}
	return r >= 0xA1 && r <= 0x17F
}

// sanitizeExtracted 清理提取出的文本：
// 范围外字符替换为空格，空白符折叠为单个空格。
func sanitizeExtracted(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if isPrintable(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
