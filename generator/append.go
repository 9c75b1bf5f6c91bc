package generator

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const appendLineHeight = 16.0

// WriteFlowedPDF 生成纯流式排版的译文 PDF（A4），
// 用于没有版面信息的来源和追加模式的附录页
func WriteFlowedPDF(outputPath, translatedText, langName string) error {
	pdf := newFlowedDoc(translatedText, langName)
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("写出译文 PDF 失败: %w", err)
	}
	return nil
}

// AppendTranslation 追加模式：保留原始页面，译文作为附录页接在后面。
// PDF 原稿用 pdfcpu 合并，图片原稿先转成一页再接附录，
// 其余来源只输出附录。
func AppendTranslation(sourcePath, outputPath, translatedText, langName string) error {
	ext := strings.ToLower(filepath.Ext(sourcePath))

	if ext == ".pdf" {
		appendixPath := outputPath + ".appendix.pdf"
		if err := WriteFlowedPDF(appendixPath, translatedText, langName); err != nil {
			return err
		}
		defer os.Remove(appendixPath)

		if err := api.MergeCreateFile([]string{sourcePath, appendixPath}, outputPath, false, nil); err != nil {
			return fmt.Errorf("合并原稿和附录失败: %w", err)
		}
		return nil
	}

	if imgType, ok := embeddableImageTypes[ext]; ok {
		pdf := gofpdf.New("P", "pt", "A4", "")
		pdf.SetAutoPageBreak(false, 0)

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
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pageW, Ht: pageH})
		pdf.ImageOptions(sourcePath, 0, 0, pageW, pageH, false,
			gofpdf.ImageOptions{ImageType: imgType}, 0, "")

		writeFlowedPages(pdf, translatedText, langName)

		if err := pdf.OutputFileAndClose(outputPath); err != nil {
			return fmt.Errorf("写出译文 PDF 失败: %w", err)
		}
		return nil
	}

	return WriteFlowedPDF(outputPath, translatedText, langName)
}

// newFlowedDoc 创建只含译文流式页面的文档
func newFlowedDoc(translatedText, langName string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "A4", "")
	writeFlowedPages(pdf, translatedText, langName)
	return pdf
}

// writeFlowedPages 追加 A4 流式页面：标题 + 按段落排版的译文
func writeFlowedPages(pdf *gofpdf.Fpdf, translatedText, langName string) {
	pdf.SetAutoPageBreak(true, 56)
	pdf.SetMargins(56, 56, 56)
	pdf.AddPage()

	uniFont := registerFallbackFont(pdf)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	family := "Arial"
	title := fmt.Sprintf("Traducción (%s)", langName)
	body := translatedText
	if uniFont != "" && (containsBeyondLatin1(translatedText) || containsBeyondLatin1(title)) {
		family = uniFont
	} else {
		title = tr(title)
		body = tr(body)
	}

	if family == "Arial" {
		pdf.SetFont(family, "B", 16)
	} else {
		pdf.SetFont(family, "", 16)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 24, title, "", 1, "L", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont(family, "", 12)
	for _, paragraph := range strings.Split(body, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		pdf.MultiCell(0, appendLineHeight, paragraph, "", "L", false)
		pdf.Ln(6)
	}
}
