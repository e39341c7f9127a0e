package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError is one entry of a structured validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error writes the single-message error shape used across the API.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
}

func NotAcceptable(c *gin.Context, message string) {
	Error(c, http.StatusNotAcceptable, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// Unauthorized writes a 401 with the WWW-Authenticate challenge for the
// expected scheme. Every authentication failure path must go through
// here so the challenge header is never missing.
func Unauthorized(c *gin.Context, challenge, message string) {
	c.Header("WWW-Authenticate", challenge)
	Error(c, http.StatusUnauthorized, message)
}

// ValidationFailed writes the field-level error list for create/update
// requests; every violated field is listed, not just the first.
func ValidationFailed(c *gin.Context, errs interface{}) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}
