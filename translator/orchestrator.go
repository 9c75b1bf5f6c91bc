package translator

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"doc-translator-web/extractor"
)

// 并发窗口和窗口间延迟：限制对提供商的并发调用，躲开限流
const (
	defaultWindow = 5
	defaultDelay  = 1 * time.Second
)

// ProgressFunc 翻译进度回调：已完成批次数 / 总批次数
type ProgressFunc func(done, total int)

// Orchestrator 分块翻译编排器。
// 有版面信息时按片段批量翻译并就地回填；
// 没有时按句子分块翻译全文。
type Orchestrator struct {
	Provider Provider
	Window   int
	Delay    time.Duration
}

// NewOrchestrator 创建编排器
func NewOrchestrator(provider Provider) *Orchestrator {
	return &Orchestrator{
		Provider: provider,
		Window:   defaultWindow,
		Delay:    defaultDelay,
	}
}

// TranslateSegments 版面保留模式。
// 片段分批后用分隔符拼成一次调用，按分隔符拆回并就地覆盖
// segments[i].Text。响应错位或某项为空时保留该项原文，
// 不丢弃也不错位后续条目。批次调用失败则整体报错。
func (o *Orchestrator) TranslateSegments(segments []extractor.TextSegment, sourceLang, targetLang string, progress ProgressFunc) error {
	batchSize := o.Provider.BatchSize()
	if batchSize <= 0 {
		batchSize = 10
	}

	// 记录非空片段的下标，空片段不参与翻译
	var indexes []int
	for i := range segments {
		if strings.TrimSpace(segments[i].Text) != "" {
			indexes = append(indexes, i)
		}
	}

	var batches [][]int
	for start := 0; start < len(indexes); start += batchSize {
		end := start + batchSize
		if end > len(indexes) {
			end = len(indexes)
		}
		batches = append(batches, indexes[start:end])
	}

	total := len(batches)
	log.Printf("[%s] 版面模式：%d 个片段分 %d 批翻译", o.Provider.Name(), len(indexes), total)

	return o.runWindowed(total, progress, func(batchIdx int) error {
		return o.translateBatch(segments, batches[batchIdx], sourceLang, targetLang)
	})
}

// translateBatch 翻译一批片段并回填
func (o *Orchestrator) translateBatch(segments []extractor.TextSegment, batch []int, sourceLang, targetLang string) error {
	texts := make([]string, len(batch))
	for i, segIdx := range batch {
		texts[i] = segments[segIdx].Text
	}

	// 随机化分隔符，降低提供商把它翻译掉的概率。
	// 这是一个脆弱的字符串协议：错位时按原文回退，绝不错排
	token := fmt.Sprintf("@@%04d@@", 1000+rand.Intn(9000))
	combined := strings.Join(texts, "\n"+token+"\n")

	translated, err := o.Provider.Translate(combined, sourceLang, targetLang)
	if err != nil {
		return &ProviderError{Provider: o.Provider.Name(), Err: err}
	}

	parts := strings.Split(translated, token)
	if len(parts) != len(texts) {
		log.Printf("警告：[%s] 批次响应错位（期望 %d 段，得到 %d 段），本批保留原文", o.Provider.Name(), len(texts), len(parts))
		return nil
	}

	for i, segIdx := range batch {
		cleaned := CleanTranslatedText(parts[i])
		if cleaned == "" {
			// 空结果保留原文
			continue
		}
		segments[segIdx].Text = cleaned
	}

	return nil
}

// TranslateText 平铺模式：按句子分块翻译全文，单空格拼接
func (o *Orchestrator) TranslateText(fullText, sourceLang, targetLang string, progress ProgressFunc) (string, error) {
	chunks := SplitTextIntoChunks(fullText, o.Provider.ChunkSize())
	if len(chunks) == 0 {
		return "", nil
	}

	log.Printf("[%s] 平铺模式：%d 个分块", o.Provider.Name(), len(chunks))

	results := make([]string, len(chunks))

	err := o.runWindowed(len(chunks), progress, func(idx int) error {
		translated, err := o.Provider.Translate(chunks[idx], sourceLang, targetLang)
		if err != nil {
			return &ProviderError{Provider: o.Provider.Name(), Err: err}
		}
		results[idx] = CleanTranslatedText(translated)
		return nil
	})
	if err != nil {
		return "", err
	}

	return strings.Join(results, " "), nil
}

// runWindowed 按固定并发窗口执行任务，整个窗口完成后再推进，
// 窗口之间加一小段延迟
func (o *Orchestrator) runWindowed(total int, progress ProgressFunc, run func(idx int) error) error {
	window := o.Window
	if window <= 0 {
		window = defaultWindow
	}

	for start := 0; start < total; start += window {
		end := start + window
		if end > total {
			end = total
		}

		errs := make([]error, end-start)
		var wg sync.WaitGroup

		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				errs[idx-start] = run(idx)
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				return err
			}
		}

		if progress != nil {
			progress(end, total)
		}

		if end < total && o.Delay > 0 {
			time.Sleep(o.Delay)
		}
	}

	return nil
}
