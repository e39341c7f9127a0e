package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"festivals-backend/internal/domains/festival"
	"festivals-backend/internal/shared/middleware"
	"festivals-backend/internal/shared/response"
	"festivals-backend/pkg/jwt"
)

const defaultSeedAmount = 10

// FestivalHandler handles HTTP requests for the festival collection.
type FestivalHandler struct {
	service festival.Service
	tokens  *jwt.Manager
}

func NewFestivalHandler(service festival.Service, tokens *jwt.Manager) *FestivalHandler {
	return &FestivalHandler{service: service, tokens: tokens}
}

// CollectionOptions handles OPTIONS /festivals
func (h *FestivalHandler) CollectionOptions(c *gin.Context) {
	c.Header("Allow", "GET,POST,OPTIONS")
	c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Accept,Content-Type")
	c.Status(http.StatusNoContent)
}

// ResourceOptions handles OPTIONS /festivals/:id
func (h *FestivalHandler) ResourceOptions(c *gin.Context) {
	c.Header("Allow", "GET,PUT,PATCH,DELETE,OPTIONS")
	c.Header("Access-Control-Allow-Methods", "GET,PUT,PATCH,DELETE,OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type,Accept")
	c.Status(http.StatusNoContent)
}

// List handles GET /festivals
func (h *FestivalHandler) List(c *gin.Context) {
	envelope, err := h.service.List(c.Request.Context(), c.Request.URL.Query(), c.Request.URL.RequestURI())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// Get handles GET /festivals/:id with conditional retrieval: when the
// client already holds a representation at least as fresh as the stored
// record, reply 304 with no body.
func (h *FestivalHandler) Get(c *gin.Context) {
	resource, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	// HTTP dates carry second precision.
	lastModified := resource.LastModified.UTC().Truncate(time.Second)
	c.Header("Last-Modified", lastModified.Format(http.TimeFormat))

	if since := c.GetHeader("If-Modified-Since"); since != "" {
		if t, err := http.ParseTime(since); err == nil && !lastModified.After(t) {
			c.Status(http.StatusNotModified)
			return
		}
	}

	c.JSON(http.StatusOK, resource.Body)
}

// Create handles POST /festivals. A body declaring the SEED method
// directive is redirected to the token-gated reseed command instead of
// being treated as a create.
func (h *FestivalHandler) Create(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	if method, _ := body["method"].(string); strings.EqualFold(method, "SEED") {
		h.runSeed(c, body["amount"])
		return
	}

	resource, err := h.service.Create(c.Request.Context(), body)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resource)
}

// Seed handles POST /festivals/seed, the explicit administrative route
// for the same reseed command. The router guards it with RequireToken.
func (h *FestivalHandler) Seed(c *gin.Context) {
	body := map[string]any{}
	if c.Request.ContentLength != 0 {
		if b, ok := bindBody(c); ok {
			body = b
		} else {
			return
		}
	}

	h.seed(c, body["amount"])
}

// runSeed is the in-band dispatch path; the token is checked here
// because the create route itself is unauthenticated.
func (h *FestivalHandler) runSeed(c *gin.Context, rawAmount any) {
	if _, ok := middleware.Authenticate(c, h.tokens); !ok {
		return
	}
	h.seed(c, rawAmount)
}

func (h *FestivalHandler) seed(c *gin.Context, rawAmount any) {
	if err := h.service.Seed(c.Request.Context(), seedAmount(rawAmount)); err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	c.Status(http.StatusCreated)
}

// Replace handles PUT /festivals/:id
func (h *FestivalHandler) Replace(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	resource, err := h.service.Replace(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

// Patch handles PATCH /festivals/:id
func (h *FestivalHandler) Patch(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	resource, err := h.service.Patch(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

// Delete handles DELETE /festivals/:id
func (h *FestivalHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func bindBody(c *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return nil, false
	}
	return body, true
}

// seedAmount coerces the requested record count; anything non-numeric
// falls back to the default.
func seedAmount(raw any) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultSeedAmount
}

// writeError maps domain errors onto the wire. Store failures surface
// their raw message in the 500 body.
func (h *FestivalHandler) writeError(c *gin.Context, err error) {
	var validationErrs festival.ValidationErrors
	var patchErr *festival.PatchError

	switch {
	case errors.Is(err, festival.ErrNotFound):
		response.NotFound(c)
	case errors.As(err, &validationErrs):
		response.ValidationFailed(c, validationErrs)
	case errors.As(err, &patchErr):
		response.BadRequest(c, patchErr.Message)
	default:
		response.InternalServerError(c, err.Error())
	}
}
