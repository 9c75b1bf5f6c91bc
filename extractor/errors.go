package extractor

import "errors"

// ErrUnsupportedFormat 未知的文件扩展名/格式
var ErrUnsupportedFormat = errors.New("formato de archivo no soportado")

// ErrUnextractableContent 文档中没有可用文本（包括扫描版 PDF 检测命中）
var ErrUnextractableContent = errors.New("el archivo no contiene texto extraíble")
