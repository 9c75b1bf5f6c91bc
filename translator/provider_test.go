package translator

import (
	"errors"
	"testing"
)

// TestNewProvider 测试提供商工厂
func TestNewProvider(t *testing.T) {
	for _, name := range []string{"free", "deepl", "openai", "chutes"} {
		p, err := NewProvider(name, "clave", nil)
		if err != nil {
			t.Errorf("创建提供商 %s 失败: %v", name, err)
			continue
		}
		if p.Name() != name {
			t.Errorf("提供商名称错误: 期望%s，得到%s", name, p.Name())
		}
		if p.ChunkSize() <= 0 || p.BatchSize() <= 0 {
			t.Errorf("提供商 %s 的分块/批次参数必须为正", name)
		}
	}
}

// TestNewProviderUnknown 测试未注册的提供商名称
func TestNewProviderUnknown(t *testing.T) {
	if _, err := NewProvider("desconocido", "", nil); err == nil {
		t.Error("未注册的提供商应报错")
	}
}

// TestProviderErrorUnwrap 测试错误链
func TestProviderErrorUnwrap(t *testing.T) {
	inner := errors.New("límite alcanzado")
	err := &ProviderError{Provider: "deepl", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("ProviderError 应能解包出原始错误")
	}

	var pErr *ProviderError
	if !errors.As(error(err), &pErr) || pErr.Provider != "deepl" {
		t.Error("errors.As 应能取出 ProviderError")
	}
}

// TestParseGTXResponse 测试 gtx 端点响应解析
func TestParseGTXResponse(t *testing.T) {
	body := []byte(`[[["Hola ","Hello ",null,null,10],["mundo","world",null,null,10]],null,"en"]`)

	got, err := parseGTXResponse(body)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if got != "Hola mundo" {
		t.Errorf("解析结果错误: %q", got)
	}
}

// TestParseGTXResponseInvalid 测试异常响应
func TestParseGTXResponseInvalid(t *testing.T) {
	for _, body := range []string{`{}`, `[]`, `[null]`, `no-json`} {
		if _, err := parseGTXResponse([]byte(body)); err == nil {
			t.Errorf("响应 %q 应解析失败", body)
		}
	}
}

// TestCacheRoundTrip 测试文件缓存存取
func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("创建缓存失败: %v", err)
	}

	key := CacheKey("hola", "es", "en")

	if _, ok := cache.Get(key); ok {
		t.Error("未写入前不应命中")
	}

	if err := cache.Set(key, "hello"); err != nil {
		t.Fatalf("写入缓存失败: %v", err)
	}

	got, ok := cache.Get(key)
	if !ok || got != "hello" {
		t.Errorf("缓存读取错误: %q (命中=%v)", got, ok)
	}

	// 不同语言对不能串缓存
	other := CacheKey("hola", "es", "fr")
	if _, ok := cache.Get(other); ok {
		t.Error("不同语言对的键不应命中")
	}
}
