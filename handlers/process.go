package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"doc-translator-web/extractor"
	"doc-translator-web/generator"
	"doc-translator-web/jobs"
	"doc-translator-web/models"
	"doc-translator-web/translator"
)

// StartProcessHandler 校验请求后立即返回，流水线在后台协程执行
func StartProcessHandler(c *gin.Context) {
	id := c.Param("id")

	var req models.ProcessRequest
	// 空请求体使用默认参数
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido"})
		return
	}
	applyDefaults(&req)

	if req.Format != "pdf" && req.Format != "docx" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Formato de salida no soportado: %s", req.Format),
		})
		return
	}

	filePath, err := findUploadedFile(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Archivo no encontrado"})
		return
	}

	store.Create(id)

	go runPipeline(id, filePath, req)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Procesamiento iniciado",
		"processId": id,
	})
}

// ProcessStatusHandler 轮询任务状态
func ProcessStatusHandler(c *gin.Context) {
	id := c.Param("id")

	status, exists := store.Get(id)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Proceso no encontrado",
			"status": "not_found",
		})
		return
	}

	c.JSON(http.StatusOK, status)
}

func applyDefaults(req *models.ProcessRequest) {
	if req.Format == "" {
		req.Format = "pdf"
	}
	if req.Provider == "" {
		req.Provider = "free"
	}
	if req.SourceLang == "" {
		req.SourceLang = "en"
	}
	if req.TargetLang == "" {
		req.TargetLang = "es"
	}
}

// findUploadedFile 按 id 前缀定位上传文件
func findUploadedFile(id string) (string, error) {
	entries, err := os.ReadDir(cfg.UploadDir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), id+"-") {
			return filepath.Join(cfg.UploadDir, entry.Name()), nil
		}
	}
	return "", os.ErrNotExist
}

// runPipeline 后台执行 提取 → 翻译 → 生成 三个阶段。
// 任何失败都落到 error 终态，panic 也一样
func runPipeline(id, filePath string, req models.ProcessRequest) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[任务 %s] 流水线panic: %v", id, r)
			store.UpdateStatus(id, 0, "Error: error interno durante el procesamiento", models.PhaseError, nil)
		}
	}()

	log.Printf("[任务 %s] 开始后台处理: %s", id, filepath.Base(filePath))

	// 阶段一：提取
	store.UpdateStatus(id, 15, "Extrayendo texto del documento...", models.PhaseExtraction, nil)
	if extractor.IsImageExtension(filepath.Ext(filePath)) {
		store.UpdateStatus(id, 20, "Procesando imagen con OCR...", models.PhaseExtraction, nil)
	}

	result, err := extr.Extract(filePath)
	if err != nil {
		failJob(id, err)
		return
	}
	if strings.TrimSpace(result.FullText) == "" {
		failJob(id, fmt.Errorf("el archivo no contiene texto extraíble"))
		return
	}

	store.UpdateStatus(id, 35,
		fmt.Sprintf("Texto extraído (%d caracteres)", len(result.FullText)),
		models.PhaseExtraction, nil)

	// 阶段二：翻译
	provider, err := translator.NewProvider(req.Provider, req.APIKey, trCache)
	if err != nil {
		failJob(id, err)
		return
	}

	srcName := models.LangName(req.SourceLang)
	tgtName := models.LangName(req.TargetLang)
	store.UpdateStatus(id, 50,
		fmt.Sprintf("Traduciendo de %s a %s...", srcName, tgtName),
		models.PhaseTranslation, nil)

	orch := translator.NewOrchestrator(provider)
	onProgress := func(done, total int) {
		progress := 50 + 30*done/total
		store.UpdateStatus(id, progress,
			fmt.Sprintf("Traduciendo de %s a %s... (%d/%d)", srcName, tgtName, done, total),
			models.PhaseTranslation, nil)
	}

	// 只有 PDF 输出且有版面信息时走覆盖渲染
	layoutMode := result.HasLayout() && req.Format == "pdf"

	var translatedText string
	if layoutMode {
		if err := orch.TranslateSegments(result.Segments, req.SourceLang, req.TargetLang, onProgress); err != nil {
			failJob(id, err)
			return
		}
		translatedText = joinSegmentTexts(result.Segments)
	} else {
		translatedText, err = orch.TranslateText(result.FullText, req.SourceLang, req.TargetLang, onProgress)
		if err != nil {
			failJob(id, err)
			return
		}
	}

	store.UpdateStatus(id, 80, fmt.Sprintf("¡Traducido a %s!", tgtName), models.PhaseTranslation, nil)

	// 阶段三：生成
	store.UpdateStatus(id, 90, "Generando archivo final...", models.PhaseGeneration, nil)

	outputPath := filepath.Join(cfg.UploadDir, fmt.Sprintf("traducido-%s.%s", id, req.Format))

	if req.Format == "docx" {
		err = generator.WriteDOCX(outputPath, translatedText)
	} else if layoutMode {
		err = generator.RenderOverlay(filePath, outputPath, result)
		if err != nil {
			// 覆盖渲染失败退回追加模式，原始页面照样保留
			log.Printf("[任务 %s] 覆盖渲染失败，退回追加模式: %v", id, err)
			err = generator.AppendTranslation(filePath, outputPath, translatedText, tgtName)
		}
	} else {
		err = generator.AppendTranslation(filePath, outputPath, translatedText, tgtName)
	}
	if err != nil {
		failJob(id, err)
		return
	}

	store.UpdateStatus(id, 100, "¡Traducción completada!", models.PhaseCompleted, &jobs.Extras{
		OutputPath:     outputPath,
		OriginalText:   result.FullText,
		TranslatedText: translatedText,
	})

	log.Printf("[任务 %s] 处理完成: %s", id, filepath.Base(outputPath))
}

func failJob(id string, err error) {
	log.Printf("[任务 %s] 处理失败: %v", id, err)
	store.UpdateStatus(id, 0, "Error: "+err.Error(), models.PhaseError, nil)
}

// joinSegmentTexts 按片段顺序拼出译文全文（状态样本用）
func joinSegmentTexts(segments []extractor.TextSegment) string {
	parts := make([]string, 0, len(segments))
	for i := range segments {
		if t := strings.TrimSpace(segments[i].Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
