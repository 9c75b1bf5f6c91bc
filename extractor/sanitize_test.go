package extractor

import "testing"

// TestSanitizeExtracted 测试提取文本的清理
func TestSanitizeExtracted(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"普通文本", "Hola mundo", "Hola mundo"},
		{"重音字符保留", "Traducción automática", "Traducción automática"},
		{"控制字符剔除", "Hola\x00\x07mundo", "Hola mundo"},
		{"空白折叠", "  Hola \t\n  mundo  ", "Hola mundo"},
		{"私有区字符剔除", "antesdespués", "antes después"},
		{"中日韩字符剔除", "texto 中文 texto", "texto texto"},
		{"空输入", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitizeExtracted(tc.in)
			if got != tc.want {
				t.Errorf("sanitizeExtracted(%q) = %q，期望 %q", tc.in, got, tc.want)
			}
		})
	}
}

// TestIsPrintable 测试允许字符范围的边界
func TestIsPrintable(t *testing.T) {
	allowed := []rune{' ', '~', 'ñ', 'á', 'ü', '¡', 'ż', 'ſ'}
	for _, r := range allowed {
		if !isPrintable(r) {
			t.Errorf("字符 %q (U+%04X) 应在允许范围内", r, r)
		}
	}

	rejected := []rune{'\x00', '\x1F', '\x7F', 0x80, 0xA0, 0x180, '中', 0xE000}
	for _, r := range rejected {
		if isPrintable(r) {
			t.Errorf("字符 U+%04X 应被剔除", r)
		}
	}
}
