package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"doc-translator-web/extractor"
)

// UploadHandler 接收上传文件，按 uuid 前缀落盘
func UploadHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se encontró ningún archivo"})
		return
	}

	if file.Size > cfg.MaxUploadMB*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("El archivo supera el límite de %d MB", cfg.MaxUploadMB),
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !extractor.IsSupportedExtension(ext) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Formato no soportado: %s. Usa PDF, DOCX, TXT o imágenes.", ext),
		})
		return
	}

	fileID := uuid.New().String()
	savedName := fileID + "-" + filepath.Base(file.Filename)
	savedPath := filepath.Join(cfg.UploadDir, savedName)

	if err := c.SaveUploadedFile(file, savedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error al procesar el archivo",
			"message": err.Error(),
		})
		return
	}

	fileType := "pdf"
	if extractor.IsImageExtension(ext) {
		fileType = "image"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"fileId":   fileID,
		"message":  "Archivo subido exitosamente",
		"filename": file.Filename,
		"size":     file.Size,
		"type":     fileType,
	})
}
