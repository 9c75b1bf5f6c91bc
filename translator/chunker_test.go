package translator

import (
	"strings"
	"testing"
)

// TestSplitTextIntoChunks 测试句子贪心分块
func TestSplitTextIntoChunks(t *testing.T) {
	text := "Primera frase. Segunda frase. Tercera frase. Cuarta frase."

	chunks := SplitTextIntoChunks(text, 35)

	if len(chunks) < 2 {
		t.Fatalf("预算35字符应产生多个分块，得到%d个", len(chunks))
	}

	for i, chunk := range chunks {
		t.Logf("分块%d (%d字符): %q", i, len(chunk), chunk)
		// 每个分块都应在句子边界结束
		if !strings.HasSuffix(chunk, ".") {
			t.Errorf("分块%d 没有在句子边界结束: %q", i, chunk)
		}
	}

	// 拼回后不丢内容
	joined := strings.Join(chunks, " ")
	for _, frase := range []string{"Primera", "Segunda", "Tercera", "Cuarta"} {
		if !strings.Contains(joined, frase) {
			t.Errorf("分块后丢失了内容: %s", frase)
		}
	}
}

// TestSplitTextIntoChunksSingle 测试预算充足时只有一块
func TestSplitTextIntoChunksSingle(t *testing.T) {
	text := "Una frase corta. Otra frase."

	chunks := SplitTextIntoChunks(text, 2000)
	if len(chunks) != 1 {
		t.Fatalf("期望1个分块，得到%d个", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("单块应保留全文: %q", chunks[0])
	}
}

// TestSplitTextIntoChunksLongSentence 测试超长单句自成一块
func TestSplitTextIntoChunksLongSentence(t *testing.T) {
	long := strings.Repeat("palabra ", 50) + "final."
	text := "Corta. " + long

	chunks := SplitTextIntoChunks(text, 30)

	if len(chunks) != 2 {
		t.Fatalf("期望2个分块，得到%d个", len(chunks))
	}
	// 超长句不拆开
	if !strings.Contains(chunks[1], "final.") {
		t.Errorf("超长句应完整保留在一个分块里")
	}
}

// TestSplitTextIntoChunksNoPunctuation 测试无句末标点的文本
func TestSplitTextIntoChunksNoPunctuation(t *testing.T) {
	text := "texto sin puntuación final"

	chunks := SplitTextIntoChunks(text, 10)
	if len(chunks) != 1 || chunks[0] != text {
		t.Errorf("无标点文本应整体作为一块: %v", chunks)
	}
}

// TestSplitTextIntoChunksEmpty 测试空输入
func TestSplitTextIntoChunksEmpty(t *testing.T) {
	if chunks := SplitTextIntoChunks("", 100); len(chunks) != 0 {
		t.Errorf("空输入应返回空结果，得到%d个", len(chunks))
	}
	if chunks := SplitTextIntoChunks("   ", 100); len(chunks) != 0 {
		t.Errorf("纯空白输入应返回空结果，得到%d个", len(chunks))
	}
}
