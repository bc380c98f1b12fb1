package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"orders_backend/internal/services"
	"orders_backend/pkg/utils"
)

// UploadHandler holds the upload service.
type UploadHandler struct {
	uploadService services.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(us services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: us}
}

// UploadImage accepts a single multipart "file" field, normalizes it to JPEG
// and responds with the public URL of the stored file.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondBadRequest(c, "No file uploaded")
		return
	}

	url, err := h.uploadService.SaveImage(fileHeader)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedImageType) {
			utils.RespondBadRequest(c, "Only JPEG, PNG and WebP images are allowed")
			return
		}
		utils.LogError(err, "UploadImage: Error from uploadService.SaveImage")
		utils.RespondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     url,
	})
}
