package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"

	"festivals-backend/internal/shared/response"
	"festivals-backend/pkg/jwt"
)

// BearerChallenge is the WWW-Authenticate value set on every bearer
// authentication failure.
const BearerChallenge = `Bearer realm="Festivals API"`

// ContextUsername is the gin context key holding the authenticated identity.
const ContextUsername = "username"

// RequireToken guards a route with bearer token authentication.
func RequireToken(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Authenticate(c, manager)
		if !ok {
			c.Abort()
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// Authenticate validates the bearer token on the request. On failure it
// writes the 401 response (with challenge header) and returns ok=false;
// callers still have to abort or return.
//
// Failure messages deliberately do not distinguish why a token is
// invalid beyond the expired case.
func Authenticate(c *gin.Context, manager *jwt.Manager) (*jwt.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		response.Unauthorized(c, BearerChallenge, "Authorization header is required")
		return nil, false
	}

	if !strings.HasPrefix(header, "Bearer ") {
		response.Unauthorized(c, BearerChallenge, "Authorization must be Bearer token")
		return nil, false
	}

	claims, err := manager.Validate(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			response.Unauthorized(c, BearerChallenge, "Token has expired")
		} else {
			response.Unauthorized(c, BearerChallenge, "Invalid token")
		}
		return nil, false
	}

	return claims, true
}
