package extractor

import (
	"testing"
)

func seg(text string, page int, x, y, w float64) TextSegment {
	return TextSegment{
		Text:      text,
		PageIndex: page,
		X:         x,
		Y:         y,
		Width:     w,
		Height:    12,
		FontSize:  12,
		Kind:      SourceVector,
	}
}

// TestGroupSegmentsMergesSameLine 测试同一行相邻片段的合并
func TestGroupSegmentsMergesSameLine(t *testing.T) {
	segments := []TextSegment{
		seg("Hola", 0, 10, 700, 30),
		seg("mundo", 0, 45, 701, 40), // 间距 5，垂直差 1
	}

	grouped := GroupSegments(segments)

	if len(grouped) != 1 {
		t.Fatalf("应合并为1个片段，得到%d个", len(grouped))
	}
	if grouped[0].Text != "Hola mundo" {
		t.Errorf("合并文本错误: %q", grouped[0].Text)
	}
	// 宽度应延伸到右侧片段的右边缘
	wantWidth := (45 + 40) - 10.0
	if grouped[0].Width != wantWidth {
		t.Errorf("合并宽度错误: 期望%.1f，得到%.1f", wantWidth, grouped[0].Width)
	}
	t.Logf("✓ 合并结果: %q (宽度 %.1f)", grouped[0].Text, grouped[0].Width)
}

// TestGroupSegmentsRespectsGap 测试水平间距过大时不合并
func TestGroupSegmentsRespectsGap(t *testing.T) {
	segments := []TextSegment{
		seg("izquierda", 0, 10, 700, 50),
		seg("derecha", 0, 100, 700, 50), // 间距 40 > 15
	}

	grouped := GroupSegments(segments)

	if len(grouped) != 2 {
		t.Fatalf("间距过大不应合并，得到%d个片段", len(grouped))
	}
}

// TestGroupSegmentsRespectsLines 测试不同视觉行不合并
func TestGroupSegmentsRespectsLines(t *testing.T) {
	segments := []TextSegment{
		seg("línea uno", 0, 10, 700, 60),
		seg("línea dos", 0, 10, 680, 60), // 垂直差 20
	}

	grouped := GroupSegments(segments)

	if len(grouped) != 2 {
		t.Fatalf("不同行不应合并，得到%d个片段", len(grouped))
	}
	// 页面顶部（Y 大）的行应排在前面
	if grouped[0].Text != "línea uno" {
		t.Errorf("排序错误，第一个片段: %q", grouped[0].Text)
	}
}

// TestGroupSegmentsSortOrder 测试排序：页优先，页内自上而下、自左向右
func TestGroupSegmentsSortOrder(t *testing.T) {
	segments := []TextSegment{
		seg("p2", 1, 10, 700, 20),
		seg("abajo", 0, 10, 100, 30),
		seg("arriba-der", 0, 200, 700, 30),
		seg("arriba-izq", 0, 10, 701, 30), // 与 arriba-der 垂直差 1，按 X 排
	}

	grouped := GroupSegments(segments)

	want := []string{"arriba-izq", "arriba-der", "abajo", "p2"}
	if len(grouped) != len(want) {
		t.Fatalf("期望%d个片段，得到%d个", len(want), len(grouped))
	}
	for i, w := range want {
		if grouped[i].Text != w {
			t.Errorf("位置%d: 期望%q，得到%q", i, w, grouped[i].Text)
		}
	}
}

// TestGroupSegmentsNoDoubleSpace 测试已有空白时不再插入空格
func TestGroupSegmentsNoDoubleSpace(t *testing.T) {
	segments := []TextSegment{
		seg("Hola ", 0, 10, 700, 32),
		seg("mundo", 0, 45, 700, 40),
	}

	grouped := GroupSegments(segments)

	if len(grouped) != 1 {
		t.Fatalf("应合并为1个片段，得到%d个", len(grouped))
	}
	if grouped[0].Text != "Hola mundo" {
		t.Errorf("不应出现双空格: %q", grouped[0].Text)
	}
}

// TestGroupSegmentsKindBoundary 测试不同来源的片段不合并
func TestGroupSegmentsKindBoundary(t *testing.T) {
	a := seg("vector", 0, 10, 700, 40)
	b := seg("ocr", 0, 55, 700, 30)
	b.Kind = SourceOCR

	grouped := GroupSegments([]TextSegment{a, b})

	if len(grouped) != 2 {
		t.Fatalf("不同来源不应合并，得到%d个片段", len(grouped))
	}
}

// TestGroupSegmentsEmpty 测试空输入和单元素输入
func TestGroupSegmentsEmpty(t *testing.T) {
	if got := GroupSegments(nil); len(got) != 0 {
		t.Errorf("空输入应返回空结果，得到%d个", len(got))
	}

	one := []TextSegment{seg("solo", 0, 10, 700, 30)}
	if got := GroupSegments(one); len(got) != 1 || got[0].Text != "solo" {
		t.Errorf("单元素输入应原样返回")
	}
}
