package translator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// FreeProvider 免费 Google Translate（gtx 客户端端点）。
// 不需要 API Key，换来的是稳定性一般，批次放大以减少调用次数。
type FreeProvider struct {
	*BaseProvider
}

func (p *FreeProvider) Name() string { return "free" }

// gtx 端点对 5000 字符以内都能处理，2000 更稳
func (p *FreeProvider) ChunkSize() int { return 2000 }

func (p *FreeProvider) BatchSize() int { return 25 }

func (p *FreeProvider) Translate(text, sourceLang, targetLang string) (string, error) {
	if cached, ok := p.checkCache(text, sourceLang, targetLang); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", sourceLang)
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	endpoint := "https://translate.googleapis.com/translate_a/single?" + params.Encode()

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return "", err
	}

	body, err := p.doRequest(req)
	if err != nil {
		return "", fmt.Errorf("error conectando con Google Translate: %w", err)
	}

	result, err := parseGTXResponse(body)
	if err != nil {
		return "", err
	}

	p.saveCache(text, sourceLang, targetLang, result)
	return result, nil
}

// parseGTXResponse 解析 gtx 端点的嵌套数组响应：
// [[["译文","原文",...],...], null, "en", ...]
func parseGTXResponse(body []byte) (string, error) {
	var outer []json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil {
		return "", fmt.Errorf("解析响应失败: %w", err)
	}

	if len(outer) == 0 {
		return "", fmt.Errorf("API 未返回翻译结果")
	}

	var sentences [][]json.RawMessage
	if err := json.Unmarshal(outer[0], &sentences); err != nil {
		return "", fmt.Errorf("解析响应失败: %w", err)
	}

	var b strings.Builder
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(sentence[0], &part); err == nil {
			b.WriteString(part)
		}
	}

	result := b.String()
	if result == "" {
		return "", fmt.Errorf("API 未返回翻译结果")
	}

	return result, nil
}
