package extractor

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ExtractDOCX 提取 DOCX 的纯文本。
// DOCX 是 zip 容器，正文在 word/document.xml 里，
// 只取 <w:t> 文本节点，段落边界映射为空行。
func ExtractDOCX(sourcePath string) (*ExtractionResult, error) {
	r, err := zip.OpenReader(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el archivo DOCX. Asegúrate de que no esté corrupto: %w", err)
	}
	defer r.Close()

	var documentXML []byte
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			documentXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, err
			}
			break
		}
	}

	if documentXML == nil {
		return nil, fmt.Errorf("no se pudo leer el archivo DOCX: falta word/document.xml")
	}

	text, err := parseDocumentXML(documentXML)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el archivo DOCX: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrUnextractableContent
	}

	return &ExtractionResult{
		FullText:  strings.TrimSpace(text),
		PageCount: 1,
		Origin:    OriginDOCX,
	}, nil
}

// parseDocumentXML 遍历 XML 标记流，收集文本节点
func parseDocumentXML(data []byte) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	var b strings.Builder
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n\n")
			case "br":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	// 折叠多余的段落分隔
	text := b.String()
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}

	return text, nil
}
