package jobs

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"doc-translator-web/models"
)

const sampleLimit = 1000

// Store 管理所有任务的状态记录。
// 每个任务只由它自己的后台协程写入，读取方只做轮询。
type Store struct {
	statuses  map[string]*models.ProcessStatus
	mu        sync.RWMutex
	uploadDir string
	retention time.Duration
}

// NewStore 创建任务状态存储
func NewStore(uploadDir string, retention time.Duration) *Store {
	return &Store{
		statuses:  make(map[string]*models.ProcessStatus),
		uploadDir: uploadDir,
		retention: retention,
	}
}

// Create 在接受任务时插入初始记录
func (s *Store) Create(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.statuses[id] = &models.ProcessStatus{
		Status:    "processing",
		Progress:  5,
		Message:   "Iniciando procesamiento...",
		Step:      models.PhaseExtraction,
		Timestamp: now,
		CreatedAt: now,
	}
}

// Extras 终态时附带的可选字段
type Extras struct {
	OutputPath     string
	OriginalText   string
	TranslatedText string
}

// UpdateStatus 整体覆盖任务状态记录并打时间戳。
// 到达终态（completed/error）时调度延迟清理。
func (s *Store) UpdateStatus(id string, progress int, message string, phase models.Phase, extras *Extras) {
	s.mu.Lock()

	prev, exists := s.statuses[id]
	if !exists {
		s.mu.Unlock()
		return
	}

	status := &models.ProcessStatus{
		Status:    "processing",
		Progress:  progress,
		Message:   message,
		Step:      phase,
		Timestamp: time.Now(),
		CreatedAt: prev.CreatedAt,
	}

	switch phase {
	case models.PhaseCompleted:
		status.Status = "completed"
	case models.PhaseError:
		status.Status = "error"
	}

	if extras != nil {
		status.OutputPath = extras.OutputPath
		status.OriginalText = truncateSample(extras.OriginalText)
		status.TranslatedText = truncateSample(extras.TranslatedText)
	}

	if phase.IsTerminal() {
		status.ExpiresAt = time.Now().Add(s.retention)
	}

	s.statuses[id] = status
	s.mu.Unlock()

	if phase.IsTerminal() {
		s.scheduleCleanup(id)
	}
}

// Get 获取任务状态快照
func (s *Store) Get(id string) (*models.ProcessStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, exists := s.statuses[id]
	if !exists {
		return nil, false
	}

	// 返回副本，避免调用方看到后续写入的中间状态
	copied := *status
	return &copied, true
}

// Delete 删除任务记录
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.statuses, id)
}

// scheduleCleanup 终态后延迟清理文件和记录，每个任务只触发一次
func (s *Store) scheduleCleanup(id string) {
	time.AfterFunc(s.retention, func() {
		s.Cleanup(id)
	})
}

// Cleanup 删除任务相关的所有文件并移除记录。
// 文件或记录已不存在时静默跳过。
func (s *Store) Cleanup(id string) {
	entries, err := os.ReadDir(s.uploadDir)
	if err == nil {
		for _, entry := range entries {
			if strings.Contains(entry.Name(), id) {
				path := filepath.Join(s.uploadDir, entry.Name())
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					log.Printf("警告：清理文件失败 %s: %v", path, err)
				}
			}
		}
	}

	s.Delete(id)
	log.Printf("[任务 %s] 已过期清理", id)
}

func truncateSample(text string) string {
	if text == "" {
		return ""
	}
	if len(text) > sampleLimit {
		return text[:sampleLimit] + "..."
	}
	return text
}
