package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"doc-translator-web/ocr"
)

// Thresholds 扫描版 PDF 检测阈值
type Thresholds struct {
	MinExtractableChars int
	MinCharsPerPage     int
}

// DefaultThresholds 原始服务使用的经验值
var DefaultThresholds = Thresholds{
	MinExtractableChars: 50,
	MinCharsPerPage:     10,
}

// Extractor 把源文档转换为带位置信息的文本片段
type Extractor struct {
	OCR        ocr.Engine
	Thresholds Thresholds
}

// New 创建提取器
func New(engine ocr.Engine, thresholds Thresholds) *Extractor {
	return &Extractor{OCR: engine, Thresholds: thresholds}
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// IsSupportedExtension 判断扩展名是否受支持
func IsSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	return ext == ".pdf" || ext == ".docx" || ext == ".txt" || imageExtensions[ext]
}

// IsImageExtension 判断是否为走 OCR 的图片格式
func IsImageExtension(ext string) bool {
	return imageExtensions[strings.ToLower(ext)]
}

// Extract 根据文件类型提取文本和位置信息
func (e *Extractor) Extract(sourcePath string) (*ExtractionResult, error) {
	ext := strings.ToLower(filepath.Ext(sourcePath))

	switch {
	case ext == ".pdf":
		return e.ExtractPDF(sourcePath)
	case imageExtensions[ext]:
		return e.ExtractImage(sourcePath)
	case ext == ".docx":
		return ExtractDOCX(sourcePath)
	case ext == ".txt":
		return ExtractPlaintext(sourcePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ExtractPlaintext 纯文本文件直接读取全文，无版面信息
func ExtractPlaintext(sourcePath string) (*ExtractionResult, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("读取文本文件失败: %w", err)
	}

	text := strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))
	if text == "" {
		return nil, ErrUnextractableContent
	}

	return &ExtractionResult{
		FullText:  text,
		PageCount: 1,
		Origin:    OriginPlaintext,
	}, nil
}
