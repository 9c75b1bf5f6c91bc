package generator

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"doc-translator-web/extractor"
)

const (
	maskPadding     = 1.0 // 遮罩比原文区域各边多出的点数
	minFontSize     = 6.0
	maxFontSize     = 72.0
	boldHeadingSize = 15.0 // 字号达到该值的片段按标题加粗
)

// RenderOverlay 版面保留渲染：在原文位置绘制白色遮罩和译文。
// 图片原稿生成单页 PDF（图片做底图），矢量 PDF 原稿生成
// 透明覆盖层后逐页盖到原始页面上，原始内容原样保留。
func RenderOverlay(sourcePath, outputPath string, result *extractor.ExtractionResult) error {
	switch result.Origin {
	case extractor.OriginOCR:
		return renderImageOverlay(sourcePath, outputPath, result.Segments)
	case extractor.OriginPDFVector:
		return renderPDFOverlay(sourcePath, outputPath, result.Segments)
	default:
		return fmt.Errorf("来源 %s 不支持版面保留渲染", result.Origin)
	}
}

// gofpdf 能内嵌的图片类型
var embeddableImageTypes = map[string]string{
	".png":  "PNG",
	".jpg":  "JPG",
	".jpeg": "JPEG",
	".gif":  "GIF",
}

// renderImageOverlay 图片原稿：页面尺寸取图片像素，
// 图片铺满底图，OCR 坐标原点已经是左上，直接落点
func renderImageOverlay(sourcePath, outputPath string, segments []extractor.TextSegment) error {
	imgType, ok := embeddableImageTypes[strings.ToLower(filepath.Ext(sourcePath))]
	if !ok {
		return fmt.Errorf("图片格式 %s 无法内嵌到 PDF", filepath.Ext(sourcePath))
	}

	f, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("打开图片失败: %w", err)
	}
	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("读取图片尺寸失败: %w", err)
	}

	pageW := float64(cfg.Width)
	pageH := float64(cfg.Height)

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pageW, Ht: pageH})

	pdf.ImageOptions(sourcePath, 0, 0, pageW, pageH, false,
		gofpdf.ImageOptions{ImageType: imgType}, 0, "")

	uniFont := registerFallbackFont(pdf)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i := range segments {
		renderSegment(pdf, &segments[i], pageH, uniFont, tr)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("写出覆盖 PDF 失败: %w", err)
	}
	return nil
}

// renderPDFOverlay 矢量原稿：按原始页面尺寸生成透明覆盖层，
// 再用 pdfcpu 把覆盖层逐页盖在原始页面之上
func renderPDFOverlay(sourcePath, outputPath string, segments []extractor.TextSegment) error {
	dims, err := api.PageDimsFile(sourcePath)
	if err != nil {
		return fmt.Errorf("读取页面尺寸失败: %w", err)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	uniFont := registerFallbackFont(pdf)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for pageIdx, dim := range dims {
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: dim.Width, Ht: dim.Height})
		for i := range segments {
			if segments[i].PageIndex != pageIdx {
				continue
			}
			renderSegment(pdf, &segments[i], dim.Height, uniFont, tr)
		}
	}

	overlayPath := outputPath + ".overlay.pdf"
	if err := pdf.OutputFileAndClose(overlayPath); err != nil {
		return fmt.Errorf("写出覆盖层失败: %w", err)
	}
	defer os.Remove(overlayPath)

	// 每页一个 PDF 水印戳，onTop 保证覆盖层压在原文上
	stamps := make(map[int]*model.Watermark, len(dims))
	for page := 1; page <= len(dims); page++ {
		wm, err := api.PDFWatermark(fmt.Sprintf("%s:%d", overlayPath, page),
			"pos:c, scale:1 abs, rot:0", true, false, types.POINTS)
		if err != nil {
			return fmt.Errorf("构建覆盖戳失败: %w", err)
		}
		stamps[page] = wm
	}

	if err := api.AddWatermarksMapFile(sourcePath, outputPath, stamps, nil); err != nil {
		return fmt.Errorf("合成覆盖层失败: %w", err)
	}
	return nil
}

// renderSegment 在片段原始位置绘制遮罩和译文。
// 矢量坐标原点在左下，先翻转到 gofpdf 的左上原点。
// 译文超宽时逐步缩小字号，到下限仍放不下就原样输出。
func renderSegment(pdf *gofpdf.Fpdf, seg *extractor.TextSegment, pageH float64, uniFont string, tr func(string) string) {
	text := strings.TrimSpace(seg.Text)
	if text == "" {
		return
	}

	y := seg.Y
	if seg.Kind == extractor.SourceVector {
		y = pageH - seg.Y - seg.Height
	}

	// 位置收进页面边界，解析异常的坐标不至于画到页外
	pageW, _ := pdf.GetPageSize()
	x := seg.X
	if x < 0 {
		x = 0
	}
	if x > pageW-minFontSize {
		x = pageW - minFontSize
	}
	if y < 0 {
		y = 0
	}
	if y > pageH-minFontSize {
		y = pageH - minFontSize
	}

	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(x-maskPadding, y-maskPadding,
		seg.Width+2*maskPadding, seg.Height+2*maskPadding, "F")

	fontSize := seg.FontSize
	if fontSize <= 0 {
		fontSize = 12
	}
	if fontSize < minFontSize {
		fontSize = minFontSize
	}
	if fontSize > maxFontSize {
		fontSize = maxFontSize
	}

	family := pickFontFamily(seg.IsSerif)
	style := ""
	// 大字号的短片段多半是标题，加粗
	if fontSize >= boldHeadingSize && len(text) <= 80 {
		style = "B"
	}

	content := tr(text)
	if uniFont != "" && containsBeyondLatin1(text) {
		// UTF-8 兜底字体只注册了常规体
		family = uniFont
		style = ""
		content = text
	}

	pdf.SetFont(family, style, fontSize)
	if pdf.Err() {
		log.Printf("警告：设置字体失败，跳过片段: %v", pdf.Error())
		pdf.ClearError()
		return
	}

	// 自动缩小字号适配原文宽度
	if seg.Width > 0 {
		for pdf.GetStringWidth(content) > seg.Width && fontSize > minFontSize {
			fontSize -= 0.5
			pdf.SetFontSize(fontSize)
		}
	}

	pdf.SetTextColor(seg.Color.R, seg.Color.G, seg.Color.B)
	pdf.SetXY(x, y)

	cellWidth := seg.Width
	if cellWidth <= 0 {
		cellWidth = pdf.GetStringWidth(content) + 2
	}
	cellHeight := seg.Height
	if cellHeight <= 0 {
		cellHeight = fontSize * 1.2
	}

	pdf.Cell(cellWidth, cellHeight, content)
}

// containsBeyondLatin1 是否包含 cp1252 转码覆盖不到的字符
func containsBeyondLatin1(text string) bool {
	for _, r := range text {
		if r > 0xFF {
			return true
		}
	}
	return false
}
