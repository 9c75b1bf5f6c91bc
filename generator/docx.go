package generator

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// WriteDOCX 把译文写成最小可用的 DOCX：
// 空行分隔的段落各成一个 <w:p>，段内换行转 <w:br/>
func WriteDOCX(outputPath, translatedText string) error {
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	doc.WriteString("\n")
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for _, paragraph := range strings.Split(translatedText, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		doc.WriteString("<w:p><w:r>")
		for i, line := range strings.Split(paragraph, "\n") {
			if i > 0 {
				doc.WriteString("<w:br/>")
			}
			doc.WriteString(`<w:t xml:space="preserve">`)
			doc.WriteString(escapeXML(line))
			doc.WriteString("</w:t>")
		}
		doc.WriteString("</w:r></w:p>")
	}

	doc.WriteString("</w:body></w:document>")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", doc.String()},
	}
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		if err != nil {
			return fmt.Errorf("构建 DOCX 失败: %w", err)
		}
		if _, err := w.Write([]byte(entry.content)); err != nil {
			return fmt.Errorf("构建 DOCX 失败: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("构建 DOCX 失败: %w", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("写出 DOCX 失败: %w", err)
	}
	return nil
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
