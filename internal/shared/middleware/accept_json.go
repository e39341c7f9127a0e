package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"festivals-backend/internal/shared/response"
)

// AcceptJSON rejects requests whose Accept header does not allow a JSON
// response. OPTIONS requests always pass.
func AcceptJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		if !acceptsJSON(c.GetHeader("Accept")) {
			response.NotAcceptable(c, "Accept header must allow application/json")
			c.Abort()
			return
		}

		c.Next()
	}
}

func acceptsJSON(header string) bool {
	if header == "" {
		return true
	}
	for _, part := range strings.Split(header, ",") {
		mediaType := strings.TrimSpace(part)
		if i := strings.Index(mediaType, ";"); i >= 0 {
			mediaType = strings.TrimSpace(mediaType[:i])
		}
		switch mediaType {
		case "application/json", "application/*", "*/*":
			return true
		}
	}
	return false
}
