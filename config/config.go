package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 服务全局配置
type Config struct {
	Port          string        // HTTP 监听端口
	UploadDir     string        // 上传/输出文件目录
	MaxUploadMB   int64         // 上传大小上限（MB）
	Retention     time.Duration // 任务完成后文件保留时间
	OCRServiceURL string        // OCR 服务地址（外部协作者）

	// 扫描版 PDF 检测阈值（经验值，可通过环境变量调整）
	MinExtractableChars int // 低于此字符数视为无可提取文本
	MinCharsPerPage     int // 多页 PDF 每页平均字符数下限
}

var current *Config

// Load 加载配置（.env 文件可选）
func Load() *Config {
	if current != nil {
		return current
	}

	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用环境变量和默认值")
	}

	current = &Config{
		Port:                getEnv("PORT", "3000"),
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:         getEnvInt64("MAX_UPLOAD_MB", 50),
		Retention:           getEnvDuration("RETENTION_WINDOW", 30*time.Minute),
		OCRServiceURL:       getEnv("OCR_SERVICE_URL", "http://localhost:8884/ocr"),
		MinExtractableChars: getEnvInt("MIN_EXTRACTABLE_CHARS", 50),
		MinCharsPerPage:     getEnvInt("MIN_CHARS_PER_PAGE", 10),
	}

	return current
}

// Reset 重置配置（仅测试用）
func Reset() {
	current = nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("警告：环境变量 %s 格式错误，使用默认值 %d", key, fallback)
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		log.Printf("警告：环境变量 %s 格式错误，使用默认值 %d", key, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("警告：环境变量 %s 格式错误，使用默认值 %s", key, fallback)
	}
	return fallback
}
