package generator

import (
	"path/filepath"
	"testing"

	"doc-translator-web/extractor"
)

// TestWriteDOCXRoundTrip 写出的 DOCX 应能被提取器读回
func TestWriteDOCXRoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "salida.docx")

	text := "Primer párrafo traducido.\n\nSegundo párrafo\ncon salto de línea."
	if err := WriteDOCX(out, text); err != nil {
		t.Fatalf("生成DOCX失败: %v", err)
	}

	result, err := extractor.ExtractDOCX(out)
	if err != nil {
		t.Fatalf("读回DOCX失败: %v", err)
	}

	if result.FullText != text {
		t.Errorf("往返内容不一致:\n写入: %q\n读回: %q", text, result.FullText)
	}
	t.Logf("✓ DOCX往返成功: %q", result.FullText)
}

// TestWriteDOCXEscaping 特殊字符必须正确转义
func TestWriteDOCXEscaping(t *testing.T) {
	out := filepath.Join(t.TempDir(), "salida.docx")

	text := "Comparación: 1 < 2 & 3 > 2"
	if err := WriteDOCX(out, text); err != nil {
		t.Fatalf("生成DOCX失败: %v", err)
	}

	result, err := extractor.ExtractDOCX(out)
	if err != nil {
		t.Fatalf("读回DOCX失败: %v", err)
	}
	if result.FullText != text {
		t.Errorf("转义往返失败:\n写入: %q\n读回: %q", text, result.FullText)
	}
}
