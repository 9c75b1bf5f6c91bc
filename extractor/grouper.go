package extractor

import (
	"sort"
	"strings"
)

// 分组阈值：同一行的垂直容差和可合并的水平间距（PDF 坐标单位）
const (
	sameLineTolerance = 3.0
	maxHorizontalGap  = 15.0
	yTieBreak         = 2.0
)

// GroupSegments 把同一视觉行上相邻的片段合并成更完整的片段，
// 让翻译拿到足够的上下文，同时减少条目数。纯函数，页内保序。
func GroupSegments(segments []TextSegment) []TextSegment {
	if len(segments) <= 1 {
		return segments
	}

	// 按页排序，页内先按 Y 降序（页面顶部在前），Y 接近时按 X 升序，
	// 保证分组结果确定
	sorted := make([]TextSegment, len(segments))
	copy(sorted, segments)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.PageIndex != b.PageIndex {
			return a.PageIndex < b.PageIndex
		}
		if diff := a.Y - b.Y; diff > yTieBreak || diff < -yTieBreak {
			return a.Y > b.Y
		}
		return a.X < b.X
	})

	result := make([]TextSegment, 0, len(sorted))
	current := sorted[0]

	for i := 1; i < len(sorted); i++ {
		item := sorted[i]

		if canGroup(current, item) {
			// 两侧都没有空白时插入一个空格
			if !strings.HasSuffix(current.Text, " ") && !strings.HasPrefix(item.Text, " ") {
				current.Text += " "
			}
			current.Text += item.Text
			current.Width = (item.X + item.Width) - current.X
		} else {
			result = append(result, current)
			current = item
		}
	}

	return append(result, current)
}

// canGroup 同页、同一行（垂直容差内）且水平间距够近才可合并
func canGroup(group, item TextSegment) bool {
	if group.PageIndex != item.PageIndex || group.Kind != item.Kind {
		return false
	}

	yDiff := item.Y - group.Y
	if yDiff < 0 {
		yDiff = -yDiff
	}
	if yDiff >= sameLineTolerance {
		return false
	}

	gap := item.X - (group.X + group.Width)
	return gap < maxHorizontalGap
}
