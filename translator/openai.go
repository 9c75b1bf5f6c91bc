package translator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// OpenAIProvider OpenAI Chat Completions 翻译
type OpenAIProvider struct {
	*BaseProvider
}

func (p *OpenAIProvider) Name() string { return "openai" }

// token 上限留余量
func (p *OpenAIProvider) ChunkSize() int { return 1500 }

func (p *OpenAIProvider) BatchSize() int { return 10 }

func (p *OpenAIProvider) Translate(text, sourceLang, targetLang string) (string, error) {
	if p.APIKey == "" {
		return "", fmt.Errorf("dame la API Key de OpenAI para arrancar")
	}

	if cached, ok := p.checkCache(text, sourceLang, targetLang); ok {
		return cached, nil
	}

	reqBody := map[string]interface{}{
		"model": "gpt-3.5-turbo",
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": fmt.Sprintf("You are a professional translator. Translate the following %s text to %s. Preserve formatting and tone. Output ONLY the translation.", sourceLang, targetLang),
			},
			{"role": "user", "content": text},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	body, err := p.doRequest(req)
	if err != nil {
		return "", fmt.Errorf("OpenAI rechazó la solicitud. Revisa la key: %w", err)
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
