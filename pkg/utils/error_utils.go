package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error responses follow a single shape across the API: {"error": message}.
// Internal error messages are surfaced directly to the client; this backend is
// a trusted internal tool, not a hardening target.

// RespondWithError sends a JSON error body with the given status and aborts
// further handler processing.
func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
	c.Abort()
}

// RespondNotFound sends the canonical 404 body.
func RespondNotFound(c *gin.Context) {
	RespondWithError(c, http.StatusNotFound, "Not found")
}

// RespondBadRequest sends a 400 with the given validation message.
func RespondBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, message)
}

// RespondInternalError sends a 500 carrying the underlying error message.
func RespondInternalError(c *gin.Context, err error) {
	RespondWithError(c, http.StatusInternalServerError, err.Error())
}
