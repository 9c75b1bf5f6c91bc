package extractor

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	dslipakpdf "github.com/dslipak/pdf"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// serifFontRegex 根据字体名推断衬线字体
var serifFontRegex = regexp.MustCompile(`(?i)Serif|Times|Roman|Georgia|Cambria|Palatino`)

// ExtractPDF 解析矢量 PDF，提取带位置的文本片段。
// 提取结果过少时按扫描版处理，报错提示改用图像上传走 OCR。
func (e *Extractor) ExtractPDF(sourcePath string) (*ExtractionResult, error) {
	log.Printf("开始解析PDF文件: %s", sourcePath)

	// 先用 pdfcpu 验证文件结构并拿到权威页数
	pageCount, err := api.PageCountFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("el archivo PDF está dañado o no es válido: %w", err)
	}

	result, err := extractVectorText(sourcePath)
	if err != nil {
		// ledongthuc 对部分编码会失败，退回 dslipak 只提取全文
		log.Printf("矢量解析失败，尝试备用解析器: %v", err)
		result, err = extractWithFallback(sourcePath)
		if err != nil {
			return nil, err
		}
	}

	if result.PageCount != pageCount {
		result.PageCount = pageCount
	}

	// 扫描版 PDF 检测：文本太少说明没有文字层
	textLen := len(result.FullText)
	perPage := textLen
	if result.PageCount > 0 {
		perPage = textLen / result.PageCount
	}

	likelyScanned := textLen < e.Thresholds.MinExtractableChars ||
		(result.PageCount > 1 && perPage < e.Thresholds.MinCharsPerPage)

	if likelyScanned {
		log.Printf("PDF疑似扫描版：%d 字符 / %d 页", textLen, result.PageCount)
		return nil, fmt.Errorf("%w: el PDF parece ser escaneado. Para PDFs escaneados, sube las imágenes individuales (PNG/JPG) para usar OCR", ErrUnextractableContent)
	}

	log.Printf("PDF解析完成，共%d页，提取%d个片段", result.PageCount, len(result.Segments))
	return result, nil
}

// extractVectorText 使用 ledongthuc/pdf 逐页提取文本运行
func extractVectorText(sourcePath string) (result *ExtractionResult, err error) {
	// 部分损坏的 PDF 会让解析库 panic，统一转为错误
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("解析PDF时发生panic: %v", r)
		}
	}()

	file, reader, err := pdf.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("打开PDF文件失败: %w", err)
	}
	defer file.Close()

	pageCount := reader.NumPage()
	var segments []TextSegment
	var fullText strings.Builder

	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		raw := extractPageSegments(page, pageNum-1)
		grouped := GroupSegments(raw)

		for i := range grouped {
			grouped[i].Text = sanitizeExtracted(grouped[i].Text)
			if grouped[i].Text == "" {
				continue
			}
			segments = append(segments, grouped[i])
			fullText.WriteString(grouped[i].Text)
			fullText.WriteByte(' ')
		}
		fullText.WriteByte('\n')
	}

	return &ExtractionResult{
		FullText:  strings.TrimSpace(fullText.String()),
		Segments:  segments,
		PageCount: pageCount,
		Origin:    OriginPDFVector,
	}, nil
}

// extractPageSegments 提取单页的原始文本运行
func extractPageSegments(page pdf.Page, pageIndex int) []TextSegment {
	var segments []TextSegment

	defer func() {
		if r := recover(); r != nil {
			log.Printf("警告：提取第%d页文本时发生panic: %v", pageIndex+1, r)
		}
	}()

	content := page.Content()
	for _, text := range content.Text {
		if strings.TrimSpace(text.S) == "" {
			continue
		}

		fontSize := text.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}

		segments = append(segments, TextSegment{
			Text:      text.S,
			PageIndex: pageIndex,
			X:         text.X,
			Y:         text.Y,
			Width:     text.W,
			Height:    fontSize,
			FontSize:  fontSize,
			IsSerif:   serifFontRegex.MatchString(text.Font),
			Color:     RGB{0, 0, 0},
			Kind:      SourceVector,
		})
	}

	return segments
}

// extractWithFallback 使用 dslipak/pdf 只提取全文（无位置信息）
func extractWithFallback(sourcePath string) (*ExtractionResult, error) {
	reader, err := dslipakpdf.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("打开PDF文件失败: %w", err)
	}

	pageCount := reader.NumPage()
	var fullText strings.Builder

	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("警告：备用解析器无法提取第%d页: %v", pageNum, err)
			continue
		}

		fullText.WriteString(sanitizeExtracted(text))
		fullText.WriteByte('\n')
	}

	return &ExtractionResult{
		FullText:  strings.TrimSpace(fullText.String()),
		PageCount: pageCount,
		Origin:    OriginPDFVector,
	}, nil
}
