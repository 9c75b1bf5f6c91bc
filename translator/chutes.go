package translator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ChutesProvider Chutes AI（Gemma 3）翻译
type ChutesProvider struct {
	*BaseProvider
}

func (p *ChutesProvider) Name() string { return "chutes" }

// Gemma 对 2500 字符左右表现最均衡
func (p *ChutesProvider) ChunkSize() int { return 2500 }

func (p *ChutesProvider) BatchSize() int { return 10 }

func (p *ChutesProvider) Translate(text, sourceLang, targetLang string) (string, error) {
	if p.APIKey == "" {
		return "", fmt.Errorf("necesito el Token de Chutes AI para esto")
	}

	if cached, ok := p.checkCache(text, sourceLang, targetLang); ok {
		return cached, nil
	}

	reqBody := map[string]interface{}{
		"model": "unsloth/gemma-3-4b-it",
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": fmt.Sprintf("Translate the following text from %s to %s. Keep the same format. Output ONLY the translation.", sourceLang, targetLang),
			},
			{"role": "user", "content": text},
		},
		"temperature": 0.3,
		"max_tokens":  3000,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", "https://llm.chutes.ai/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	body, err := p.doRequest(req)
	if err != nil {
		// 余额不足时给用户一个直白的提示
		if strings.Contains(err.Error(), "balance") {
			return "", fmt.Errorf("tu saldo de Chutes AI se agotó (balance is $0.0)")
		}
		return "", fmt.Errorf("error conectando con Chutes AI. Intenta de nuevo: %w", err)
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}

	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("解析响应失败: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("API 错误: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("API 未返回翻译结果")
	}

	result := strings.TrimSpace(resp.Choices[0].Message.Content)
	p.saveCache(text, sourceLang, targetLang, result)
	return result, nil
}
