package translator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DeepLProvider DeepL API（免费版 key 以 :fx 结尾，走 api-free 域名）
type DeepLProvider struct {
	*BaseProvider
}

func (p *DeepLProvider) Name() string { return "deepl" }

func (p *DeepLProvider) ChunkSize() int { return 2000 }

// 付费精准提供商批次放小，降低单次响应错位的代价
func (p *DeepLProvider) BatchSize() int { return 15 }

func (p *DeepLProvider) Translate(text, sourceLang, targetLang string) (string, error) {
	if p.APIKey == "" {
		return "", fmt.Errorf("se necesita una API Key para DeepL")
	}

	if cached, ok := p.checkCache(text, sourceLang, targetLang); ok {
		return cached, nil
	}

	endpoint := "https://api.deepl.com/v2/translate"
	if strings.HasSuffix(p.APIKey, ":fx") {
		endpoint = "https://api-free.deepl.com/v2/translate"
	}

	params := url.Values{}
	params.Set("auth_key", p.APIKey)
	params.Set("text", text)
	if sourceLang != "auto" {
		params.Set("source_lang", strings.ToUpper(sourceLang))
	}
	params.Set("target_lang", strings.ToUpper(targetLang))

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := p.doRequest(req)
	if err != nil {
		return "", fmt.Errorf("DeepL no quiso cooperar. Chequea esa API Key: %w", err)
	}

	var resp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
		Message string `json:"message,omitempty"`
	}

	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("解析响应失败: %w", err)
	}

	if resp.Message != "" {
		return "", fmt.Errorf("API 错误: %s", resp.Message)
	}

	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("API 未返回翻译结果")
	}

	result := resp.Translations[0].Text
	p.saveCache(text, sourceLang, targetLang, result)
	return result, nil
}
