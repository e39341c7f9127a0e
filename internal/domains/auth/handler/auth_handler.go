package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"festivals-backend/internal/domains/auth"
	"festivals-backend/internal/shared/middleware"
	"festivals-backend/internal/shared/response"
)

// AuthHandler handles login and the token-gated profile lookup.
type AuthHandler struct {
	verifier *auth.Verifier
}

func NewAuthHandler(verifier *auth.Verifier) *AuthHandler {
	return &AuthHandler{verifier: verifier}
}

// LoginOptions handles OPTIONS /login
func (h *AuthHandler) LoginOptions(c *gin.Context) {
	c.Header("Allow", "POST,OPTIONS")
	c.Header("Access-Control-Allow-Methods", "POST,OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Accept,Content-Type")
	c.Status(http.StatusNoContent)
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	token, err := h.verifier.VerifyBasic(c.GetHeader("Authorization"))
	if err != nil {
		var authErr *auth.Error
		if errors.As(err, &authErr) {
			response.Unauthorized(c, auth.BasicChallenge, authErr.Message)
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, token)
}

// Profile handles GET /profile; RequireToken has already validated the
// bearer token and stored the identity it was issued for.
func (h *AuthHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"username": c.GetString(middleware.ContextUsername),
	})
}
