package jobs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"doc-translator-web/models"
)

// TestStoreLifecycle 测试任务状态的完整生命周期
func TestStoreLifecycle(t *testing.T) {
	s := NewStore(t.TempDir(), time.Hour)

	id := "tarea-123"
	s.Create(id)

	status, ok := s.Get(id)
	if !ok {
		t.Fatal("创建后应能查到任务")
	}
	if status.Progress != 5 || status.Step != models.PhaseExtraction {
		t.Errorf("初始状态错误: progress=%d step=%s", status.Progress, status.Step)
	}
	if status.Message != "Iniciando procesamiento..." {
		t.Errorf("初始消息错误: %q", status.Message)
	}

	s.UpdateStatus(id, 50, "Traduciendo...", models.PhaseTranslation, nil)

	status, _ = s.Get(id)
	if status.Progress != 50 || status.Step != models.PhaseTranslation {
		t.Errorf("更新后状态错误: progress=%d step=%s", status.Progress, status.Step)
	}
	if status.Status != "processing" {
		t.Errorf("中间阶段 status 应为 processing: %s", status.Status)
	}
	if status.CreatedAt.IsZero() {
		t.Error("CreatedAt 不应被更新清掉")
	}
}

// TestStoreCompletedExtras 测试终态的附加字段和样本截断
func TestStoreCompletedExtras(t *testing.T) {
	s := NewStore(t.TempDir(), time.Hour)

	id := "tarea-456"
	s.Create(id)

	long := strings.Repeat("x", 1500)
	s.UpdateStatus(id, 100, "¡Traducción completada!", models.PhaseCompleted, &Extras{
		OutputPath:     "/tmp/salida.pdf",
		OriginalText:   long,
		TranslatedText: "texto corto",
	})

	status, _ := s.Get(id)
	if status.Status != "completed" {
		t.Errorf("status 应为 completed: %s", status.Status)
	}
	if status.ExpiresAt.IsZero() {
		t.Error("终态应设置过期时间")
	}
	// 样本截断为 1000 字符 + 省略号
	if len(status.OriginalText) != 1003 || !strings.HasSuffix(status.OriginalText, "...") {
		t.Errorf("原文样本截断错误: 长度%d", len(status.OriginalText))
	}
	if status.TranslatedText != "texto corto" {
		t.Errorf("短文本不应截断: %q", status.TranslatedText)
	}
}

// TestStoreGetReturnsCopy 快照不应暴露后续写入
func TestStoreGetReturnsCopy(t *testing.T) {
	s := NewStore(t.TempDir(), time.Hour)

	id := "tarea-789"
	s.Create(id)

	before, _ := s.Get(id)
	s.UpdateStatus(id, 90, "Generando archivo final...", models.PhaseGeneration, nil)

	if before.Progress != 5 {
		t.Errorf("之前取的快照被后续写入污染: progress=%d", before.Progress)
	}
}

// TestStoreGetUnknown 测试未知任务
func TestStoreGetUnknown(t *testing.T) {
	s := NewStore(t.TempDir(), time.Hour)
	if _, ok := s.Get("no-existe"); ok {
		t.Error("未知任务不应命中")
	}
}

// TestStoreUpdateUnknown 对不存在的任务更新是空操作
func TestStoreUpdateUnknown(t *testing.T) {
	s := NewStore(t.TempDir(), time.Hour)
	s.UpdateStatus("no-existe", 50, "x", models.PhaseTranslation, nil)
	if _, ok := s.Get("no-existe"); ok {
		t.Error("更新不应创建记录")
	}
}

// TestStoreCleanup 测试保留期后的文件清理和记录驱逐
func TestStoreCleanup(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, 50*time.Millisecond)

	id := "tarea-limpieza"
	s.Create(id)

	// 上传文件和输出文件都含任务 id，无关文件不受影响
	related := filepath.Join(dir, id+"-entrada.pdf")
	output := filepath.Join(dir, "traducido-"+id+".pdf")
	unrelated := filepath.Join(dir, "otro-archivo.pdf")
	for _, p := range []string{related, output, unrelated} {
		if err := os.WriteFile(p, []byte("datos"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	s.UpdateStatus(id, 100, "¡Traducción completada!", models.PhaseCompleted, &Extras{OutputPath: output})

	// 等待清理触发
	deadline := time.After(2 * time.Second)
	for {
		if _, ok := s.Get(id); !ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("保留期过后记录仍未清理")
		case <-time.After(20 * time.Millisecond):
		}
	}

	if _, err := os.Stat(related); !os.IsNotExist(err) {
		t.Error("上传文件应被删除")
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("输出文件应被删除")
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Error("无关文件不应被删除")
	}
}

// TestStoreCleanupIdempotent 重复清理和缺失文件都不报错
func TestStoreCleanupIdempotent(t *testing.T) {
	s := NewStore(t.TempDir(), time.Hour)

	s.Cleanup("nunca-existió")
	s.Cleanup("nunca-existió")

	if _, ok := s.Get("nunca-existió"); ok {
		t.Error("清理后不应有记录")
	}
}
