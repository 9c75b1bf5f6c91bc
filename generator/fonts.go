package generator

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/jung-kurt/gofpdf"
)

// 核心字体只覆盖 cp1252，超出的字符需要系统 TTF 兜底
var fallbackFontFiles = []string{
	"truetype/dejavu/DejaVuSans.ttf",
	"truetype/liberation/LiberationSans-Regular.ttf",
	"TTF/DejaVuSans.ttf",
	"DejaVuSans.ttf",
	"arial.ttf",
}

// systemFontsDir 获取系统字体目录
func systemFontsDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("WINDIR"), "Fonts")
	case "darwin":
		return "/System/Library/Fonts"
	case "linux":
		dirs := []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
		}
		for _, dir := range dirs {
			if _, err := os.Stat(dir); err == nil {
				return dir
			}
		}
		return "/usr/share/fonts"
	default:
		return ""
	}
}

// findFallbackFont 在系统字体目录里找一个可用的 TTF
func findFallbackFont() string {
	dir := systemFontsDir()
	if dir == "" {
		return ""
	}
	for _, name := range fallbackFontFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// registerFallbackFont 注册 UTF-8 兜底字体，找不到时返回空串，
// 调用方退回核心字体 + cp1252 转码
func registerFallbackFont(pdf *gofpdf.Fpdf) string {
	path := findFallbackFont()
	if path == "" {
		return ""
	}
	pdf.AddUTF8Font("Unifont", "", path)
	if pdf.Err() {
		pdf.ClearError()
		return ""
	}
	return "Unifont"
}

// pickFontFamily 按衬线标记选核心字体族
func pickFontFamily(isSerif bool) string {
	if isSerif {
		return "Times"
	}
	return "Arial"
}
