package extractor

// SourceKind 片段的来源类型，决定坐标系原点
type SourceKind string

const (
	SourceVector SourceKind = "vector" // PDF 矢量文本，原点左下
	SourceOCR    SourceKind = "ocr"    // OCR 行文本，原点左上
)

// Origin 提取结果的来源格式
type Origin string

const (
	OriginPDFVector Origin = "pdf-vector"
	OriginOCR       Origin = "ocr"
	OriginDOCX      Origin = "docx"
	OriginPlaintext Origin = "plaintext"
)

// RGB 文本颜色，各分量 0-255
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// TextSegment 带位置的可翻译文本单元。
// 除 Text 字段（翻译阶段就地覆盖）外创建后不再修改。
type TextSegment struct {
	Text      string     `json:"text"`
	PageIndex int        `json:"pageIndex"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	FontSize  float64    `json:"fontSize"`
	IsSerif   bool       `json:"isSerif"`
	Color     RGB        `json:"color"`
	Kind      SourceKind `json:"sourceKind"`
}

// ExtractionResult 一个文档的提取结果。
// Segments 为空表示没有可保留的版面（DOCX/纯文本）。
type ExtractionResult struct {
	FullText  string        `json:"fullText"`
	Segments  []TextSegment `json:"segments,omitempty"`
	PageCount int           `json:"pageCount"`
	Origin    Origin        `json:"origin"`
}

// HasLayout 判断是否有可用于版面保留渲染的片段
func (r *ExtractionResult) HasLayout() bool {
	return len(r.Segments) > 0
}
