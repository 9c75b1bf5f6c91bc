package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// DownloadHandler 下载翻译结果，仅在任务完成后可用
func DownloadHandler(c *gin.Context) {
	id := c.Param("id")

	status, exists := store.Get(id)
	if !exists || status.Status != "completed" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Archivo no disponible para descarga"})
		return
	}

	if _, err := os.Stat(status.OutputPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Archivo no encontrado"})
		return
	}

	downloadName := fmt.Sprintf("traducido-%s%s", id, filepath.Ext(status.OutputPath))
	c.FileAttachment(status.OutputPath, downloadName)
}
