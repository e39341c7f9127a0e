package handler_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"festivals-backend/internal/config"
	"festivals-backend/internal/domains/auth"
	"festivals-backend/internal/domains/auth/handler"
	"festivals-backend/internal/shared/middleware"
	"festivals-backend/pkg/jwt"
)

func newServer(t *testing.T) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := jwt.NewManager("test-secret", time.Hour)
	verifier := auth.NewVerifier(config.AuthConfig{Username: "admin", Password: "s3cret"}, tokens)
	h := handler.NewAuthHandler(verifier)

	router := gin.New()
	router.OPTIONS("/login", h.LoginOptions)
	router.POST("/login", h.Login)
	router.GET("/profile", middleware.RequireToken(tokens), h.Profile)
	return router, tokens
}

func do(router *gin.Engine, method, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestLogin(t *testing.T) {
	router, tokens := newServer(t)

	w := do(router, http.MethodPost, "/login", basicHeader("admin", "s3cret"))
	require.Equal(t, http.StatusOK, w.Code)

	var body auth.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Bearer", body.TokenType)
	require.Equal(t, 3600, body.ExpiresIn)

	claims, err := tokens.Validate(body.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Username)
}

func TestLogin_Failures(t *testing.T) {
	router, _ := newServer(t)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Authorization header is required"},
		{"bearer scheme", "Bearer abc", "Authorization must be Basic authentication"},
		{"bad credentials", basicHeader("admin", "wrong"), "Invalid username or password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/login", tt.header)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Equal(t, `Basic realm="Festivals API"`, w.Header().Get("WWW-Authenticate"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Equal(t, tt.message, body["error"])
		})
	}
}

func TestLoginOptions(t *testing.T) {
	router, _ := newServer(t)

	w := do(router, http.MethodOptions, "/login", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "POST,OPTIONS", w.Header().Get("Allow"))
}

func TestProfile(t *testing.T) {
	router, tokens := newServer(t)

	token, err := tokens.Generate("admin")
	require.NoError(t, err)

	w := do(router, http.MethodGet, "/profile", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "admin", body["username"])
}

func TestProfile_TokenFailures(t *testing.T) {
	router, _ := newServer(t)

	expired, err := jwt.NewManager("test-secret", -time.Minute).Generate("admin")
	require.NoError(t, err)
	forged, err := jwt.NewManager("other-secret", time.Hour).Generate("admin")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Authorization header is required"},
		{"basic scheme", basicHeader("admin", "s3cret"), "Authorization must be Bearer token"},
		{"expired token", "Bearer " + expired, "Token has expired"},
		{"forged token", "Bearer " + forged, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodGet, "/profile", tt.header)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Equal(t, `Bearer realm="Festivals API"`, w.Header().Get("WWW-Authenticate"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Equal(t, tt.message, body["error"])
		})
	}
}
