package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"doc-translator-web/config"
	"doc-translator-web/extractor"
	"doc-translator-web/handlers"
	"doc-translator-web/jobs"
	"doc-translator-web/middleware"
	"doc-translator-web/ocr"
	"doc-translator-web/translator"
)

func main() {
	cfg := config.Load()

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatalf("创建上传目录失败: %v", err)
	}

	cache, err := translator.NewCache(filepath.Join(cfg.UploadDir, ".cache"))
	if err != nil {
		log.Fatalf("创建翻译缓存失败: %v", err)
	}

	store := jobs.NewStore(cfg.UploadDir, cfg.Retention)
	engine := ocr.NewHTTPEngine(cfg.OCRServiceURL)
	extr := extractor.New(engine, extractor.Thresholds{
		MinExtractableChars: cfg.MinExtractableChars,
		MinCharsPerPage:     cfg.MinCharsPerPage,
	})

	handlers.Init(cfg, store, extr, cache)

	r := gin.Default()

	// 设置最大上传文件大小
	r.MaxMultipartMemory = cfg.MaxUploadMB << 20

	r.Use(middleware.CORSMiddleware())

	// API 路由
	api := r.Group("/api")
	{
		api.POST("/upload", handlers.UploadHandler)
		api.POST("/process/:id", handlers.StartProcessHandler)
		api.GET("/process/:id", handlers.ProcessStatusHandler)
		api.GET("/download/:id", handlers.DownloadHandler)
	}

	log.Printf("🚀 文档翻译服务器启动在 http://localhost:%s", cfg.Port)
	r.Run(":" + cfg.Port)
}
