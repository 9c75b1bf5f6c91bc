package translator

import (
	"regexp"
	"strings"
)

// 句末标点 + 空白，分块永远不会从句子中间切开
var sentenceEndRegex = regexp.MustCompile(`([.!?]+)(\s+)`)

// SplitTextIntoChunks 按句子贪心累积，不超过字符预算。
// 单句超过预算时自成一块（宁可超限也不拆句）。
func SplitTextIntoChunks(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = 1000
	}

	sentences := splitSentences(text)

	var chunks []string
	var current strings.Builder

	for _, sentence := range sentences {
		if current.Len() > 0 && current.Len()+len(sentence) > chunkSize {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(sentence)
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

// splitSentences 把文本切成保留结尾标点和空白的句子序列
func splitSentences(text string) []string {
	indexes := sentenceEndRegex.FindAllStringIndex(text, -1)
	if len(indexes) == 0 {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	var sentences []string
	start := 0
	for _, idx := range indexes {
		sentences = append(sentences, text[start:idx[1]])
		start = idx[1]
	}
	if start < len(text) && strings.TrimSpace(text[start:]) != "" {
		sentences = append(sentences, text[start:])
	}

	return sentences
}
