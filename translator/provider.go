package translator

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider 翻译提供商接口。
// 每个实现独立决定自己的分块/批次大小和限流策略。
type Provider interface {
	// Translate 翻译一段文本，出错时返回提供商相关的错误
	Translate(text, sourceLang, targetLang string) (string, error)
	// Name 提供商名称
	Name() string
	// ChunkSize 平铺模式下单次调用的字符预算
	ChunkSize() int
	// BatchSize 版面保留模式下每批的片段数
	BatchSize() int
}

// ProviderError 提供商调用失败（配额/鉴权/网络），
// 错误信息会原样作为任务的终态消息展示。
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("[%s] %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// BaseProvider 提供商的公共部分：HTTP 客户端和翻译缓存
type BaseProvider struct {
	APIKey     string
	HTTPClient *http.Client
	Cache      *Cache
}

func newBaseProvider(apiKey string, cache *Cache) *BaseProvider {
	return &BaseProvider{
		APIKey: apiKey,
		HTTPClient: &http.Client{
			// 提供商边界上的单次调用超时，超时按翻译阶段错误处理
			Timeout: 120 * time.Second,
		},
		Cache: cache,
	}
}

// doRequest 执行 HTTP 请求并读取响应体
func (b *BaseProvider) doRequest(req *http.Request) ([]byte, error) {
	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API 请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API 返回错误 (状态码 %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// checkCache 检查缓存
func (b *BaseProvider) checkCache(text, sourceLang, targetLang string) (string, bool) {
	if b.Cache != nil {
		if cached, ok := b.Cache.Get(CacheKey(text, sourceLang, targetLang)); ok {
			return cached, true
		}
	}
	return "", false
}

// saveCache 保存到缓存
func (b *BaseProvider) saveCache(text, sourceLang, targetLang, result string) {
	if b.Cache != nil {
		b.Cache.Set(CacheKey(text, sourceLang, targetLang), result)
	}
}

// NewProvider 按名称创建提供商实例
func NewProvider(name, apiKey string, cache *Cache) (Provider, error) {
	base := newBaseProvider(apiKey, cache)

	switch name {
	case "free":
		return &FreeProvider{BaseProvider: base}, nil
	case "deepl":
		return &DeepLProvider{BaseProvider: base}, nil
	case "openai":
		return &OpenAIProvider{BaseProvider: base}, nil
	case "chutes":
		return &ChutesProvider{BaseProvider: base}, nil
	default:
		return nil, fmt.Errorf("provider de traducción '%s' no está activo", name)
	}
}
