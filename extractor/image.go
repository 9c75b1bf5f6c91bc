package extractor

import (
	"fmt"
	"log"
	"strings"
)

// OCR 行高到字号的经验换算系数
const ocrFontSizeRatio = 0.75

// ExtractImage 通过 OCR 能力识别图像中的文本，
// 每行映射为一个片段（原点左上）。
func (e *Extractor) ExtractImage(sourcePath string) (*ExtractionResult, error) {
	if e.OCR == nil {
		return nil, fmt.Errorf("OCR 能力未配置")
	}

	log.Printf("开始OCR识别图像: %s", sourcePath)

	recognized, err := e.OCR.Recognize(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("no se pudo extraer texto de la imagen. Asegúrate de que la imagen tenga texto legible: %w", err)
	}

	text := sanitizeExtracted(recognized.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: no se pudo extraer texto de la imagen", ErrUnextractableContent)
	}

	var segments []TextSegment
	for _, line := range recognized.Lines {
		lineText := sanitizeExtracted(line.Text)
		if lineText == "" {
			continue
		}

		fontSize := line.Box.Height * ocrFontSizeRatio
		if fontSize <= 0 {
			fontSize = 12
		}

		segments = append(segments, TextSegment{
			Text:      lineText,
			PageIndex: 0,
			X:         line.Box.X,
			Y:         line.Box.Y,
			Width:     line.Box.Width,
			Height:    line.Box.Height,
			FontSize:  fontSize,
			IsSerif:   false,
			Color:     RGB{0, 0, 0},
			Kind:      SourceOCR,
		})
	}

	log.Printf("OCR识别完成，%d 行文本", len(segments))

	return &ExtractionResult{
		FullText:  strings.TrimSpace(text),
		Segments:  segments,
		PageCount: 1,
		Origin:    OriginOCR,
	}, nil
}
