package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"orders_backend/internal/services"
	"orders_backend/pkg/utils"
)

// UploadFilter pre-validates upload requests before the handler touches the
// multipart form: the request must be multipart/form-data and the payload must
// stay under the upload ceiling. The body reader is capped so an oversized
// upload fails while streaming instead of being buffered in full.
func UploadFilter() gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")
		if !strings.HasPrefix(strings.ToLower(contentType), "multipart/form-data") {
			utils.RespondBadRequest(c, "multipart/form-data request required")
			return
		}

		if c.Request.ContentLength > services.MaxUploadSizeBytes {
			utils.RespondWithError(c, http.StatusBadRequest, "file size exceeds 10MB limit")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxUploadSizeBytes)

		c.Next()
	}
}
