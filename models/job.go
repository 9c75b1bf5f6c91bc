package models

import "time"

// Phase 任务所处的流水线阶段
type Phase string

const (
	PhaseExtraction  Phase = "extraction"
	PhaseTranslation Phase = "translation"
	PhaseGeneration  Phase = "generation"
	PhaseCompleted   Phase = "completed"
	PhaseError       Phase = "error"
)

// IsTerminal 判断是否为终态
func (p Phase) IsTerminal() bool {
	return p == PhaseCompleted || p == PhaseError
}

// ProcessStatus 一个文档任务的状态快照
type ProcessStatus struct {
	Status         string    `json:"status"` // processing, completed, error
	Progress       int       `json:"progress"`
	Message        string    `json:"message"`
	Step           Phase     `json:"step"`
	OutputPath     string    `json:"outputPath,omitempty"`
	OriginalText   string    `json:"originalText,omitempty"`   // 原文样本（最多 1000 字符）
	TranslatedText string    `json:"translatedText,omitempty"` // 译文样本（最多 1000 字符）
	Timestamp      time.Time `json:"timestamp"`
	CreatedAt      time.Time `json:"createdAt"`
	ExpiresAt      time.Time `json:"expiresAt,omitempty"`
}

// ProcessRequest 启动翻译处理的请求
type ProcessRequest struct {
	Format     string `json:"format"`   // pdf, docx
	Provider   string `json:"provider"` // free, deepl, openai, chutes
	APIKey     string `json:"apiKey,omitempty"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

// LangNames 语言代码到西班牙语名称的映射（用户可见消息用）
var LangNames = map[string]string{
	"en":   "Inglés",
	"es":   "Español",
	"fr":   "Francés",
	"de":   "Alemán",
	"pt":   "Portugués",
	"it":   "Italiano",
	"auto": "Auto-detectar",
}

// LangName 返回语言的可读名称，未知代码原样返回
func LangName(code string) string {
	if name, ok := LangNames[code]; ok {
		return name
	}
	return code
}
