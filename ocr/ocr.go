package ocr

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// BoundingBox 行级文本的边界框（图像坐标系，原点左上）
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Line 识别出的一行文本
type Line struct {
	Text string      `json:"text"`
	Box  BoundingBox `json:"bbox"`
}

// Result OCR 识别结果
type Result struct {
	Text  string `json:"text"`
	Lines []Line `json:"lines"`
}

// Engine OCR 能力接口（外部协作者）
type Engine interface {
	Recognize(imagePath string) (*Result, error)
}

// HTTPEngine 通过 HTTP 调用 OCR 服务（如 tesseract 服务端）
type HTTPEngine struct {
	URL        string
	Languages  string // 识别语言，如 "eng+spa"
	HTTPClient *http.Client
}

// NewHTTPEngine 创建 OCR 客户端
func NewHTTPEngine(url string) *HTTPEngine {
	return &HTTPEngine{
		URL:       url,
		Languages: "eng+spa",
		HTTPClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Recognize 识别图像中的文本及行级位置
func (e *HTTPEngine) Recognize(imagePath string) (*Result, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("读取图像文件失败: %w", err)
	}

	reqBody := map[string]string{
		"image":     base64.StdEncoding.EncodeToString(data),
		"languages": e.Languages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", e.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OCR 服务请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCR 服务返回错误 (状态码 %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Text  string `json:"text"`
		Lines []Line `json:"lines"`
		Error string `json:"error,omitempty"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("解析 OCR 响应失败: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("OCR 识别错误: %s", result.Error)
	}

	if strings.TrimSpace(result.Text) == "" && len(result.Lines) == 0 {
		return nil, fmt.Errorf("OCR 未识别出任何文本")
	}

	// 部分服务只返回整段文本，没有行信息
	if result.Text == "" {
		var parts []string
		for _, line := range result.Lines {
			parts = append(parts, line.Text)
		}
		result.Text = strings.Join(parts, "\n")
	}

	return &Result{Text: strings.TrimSpace(result.Text), Lines: result.Lines}, nil
}
