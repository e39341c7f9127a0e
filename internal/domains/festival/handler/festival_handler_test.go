package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"festivals-backend/internal/domains/festival"
	"festivals-backend/internal/domains/festival/handler"
	"festivals-backend/internal/domains/festival/service"
	"festivals-backend/internal/shared/hyper"
	"festivals-backend/internal/shared/middleware"
	"festivals-backend/pkg/jwt"
)

// memRepo is an in-memory festival.Repository backing the HTTP tests.
type memRepo struct {
	mu      sync.Mutex
	order   []uuid.UUID
	records map[uuid.UUID]*festival.Record
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[uuid.UUID]*festival.Record)}
}

func (r *memRepo) matches(rec *festival.Record, f festival.Filter) bool {
	if f.HasBookmark != nil {
		if b, _ := rec.Doc["hasBookmark"].(bool); b != *f.HasBookmark {
			return false
		}
	}
	if f.Organizer != nil {
		if s, _ := rec.Doc["organizer"].(string); s != *f.Organizer {
			return false
		}
	}
	if f.CountryCode != nil {
		if s, _ := rec.Doc["countryCode"].(string); s != *f.CountryCode {
			return false
		}
	}
	return true
}

func (r *memRepo) Find(_ context.Context, f festival.Filter, limit, offset int) ([]*festival.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*festival.Record
	for _, id := range r.order {
		if rec, ok := r.records[id]; ok && r.matches(rec, f) {
			matched = append(matched, rec)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *memRepo) FindByID(_ context.Context, id uuid.UUID) (*festival.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, festival.ErrNotFound
	}
	return rec, nil
}

func (r *memRepo) Create(_ context.Context, doc map[string]any) (*festival.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	rec := &festival.Record{ID: uuid.New(), Doc: doc, CreatedAt: now, UpdatedAt: now}
	r.records[rec.ID] = rec
	r.order = append(r.order, rec.ID)
	return rec, nil
}

func (r *memRepo) Replace(_ context.Context, id uuid.UUID, doc map[string]any) (*festival.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, festival.ErrNotFound
	}
	rec.Doc = doc
	rec.UpdatedAt = time.Now().UTC()
	return rec, nil
}

func (r *memRepo) Patch(_ context.Context, id uuid.UUID, fields map[string]any) (*festival.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, festival.ErrNotFound
	}
	for k, v := range fields {
		rec.Doc[k] = v
	}
	rec.UpdatedAt = time.Now().UTC()
	return rec, nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return festival.ErrNotFound
	}
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memRepo) Count(_ context.Context, f festival.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total int64
	for _, rec := range r.records {
		if r.matches(rec, f) {
			total++
		}
	}
	return total, nil
}

func (r *memRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[uuid.UUID]*festival.Record)
	r.order = nil
	return nil
}

func newServer(t *testing.T) (*gin.Engine, *memRepo, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemRepo()
	links := hyper.NewBuilder("http://localhost", "8080", "festivals")
	svc := service.NewFestivalService(repo, links)
	tokens := jwt.NewManager("test-secret", time.Hour)
	h := handler.NewFestivalHandler(svc, tokens)

	router := gin.New()
	router.Use(middleware.AcceptJSON())

	festivals := router.Group("/festivals")
	{
		festivals.OPTIONS("", h.CollectionOptions)
		festivals.GET("", h.List)
		festivals.POST("", h.Create)
		festivals.POST("/seed", middleware.RequireToken(tokens), h.Seed)

		festivals.OPTIONS("/:id", h.ResourceOptions)
		festivals.GET("/:id", h.Get)
		festivals.PUT("/:id", h.Replace)
		festivals.PATCH("/:id", h.Patch)
		festivals.DELETE("/:id", h.Delete)
	}

	return router, repo, tokens
}

func do(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func festivalBody() map[string]any {
	return map[string]any{
		"name":        "Lowlands",
		"description": "Three days of music",
		"review":      8.5,
		"organizer":   "MOJO",
	}
}

func TestCreate(t *testing.T) {
	router, _, _ := newServer(t)

	w := do(router, http.MethodPost, "/festivals", festivalBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	require.NotEmpty(t, body["id"])
	require.Equal(t, "Lowlands", body["name"])
	require.Equal(t, false, body["hasBookmark"])
	require.Contains(t, body, "_links")
}

func TestCreate_ValidationListsEveryField(t *testing.T) {
	router, _, _ := newServer(t)

	w := do(router, http.MethodPost, "/festivals", map[string]any{"review": "high"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Errors, 3)
	require.Equal(t, "description", body.Errors[0].Field)
	require.Equal(t, "name", body.Errors[1].Field)
	require.Equal(t, "review", body.Errors[2].Field)
	require.Equal(t, "Review must be a number", body.Errors[2].Message)
}

func TestCreate_MalformedJSON(t *testing.T) {
	router, _, _ := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/festivals", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid request payload", decode(t, w)["error"])
}

func TestCreateThenGet(t *testing.T) {
	router, _, _ := newServer(t)

	created := decode(t, do(router, http.MethodPost, "/festivals", festivalBody(), nil))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	w := do(router, http.MethodGet, "/festivals/"+id, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("Last-Modified"))

	body := decode(t, w)
	require.Equal(t, id, body["id"])
	require.Equal(t, "MOJO", body["organizer"])
}

func TestGet_Conditional(t *testing.T) {
	router, _, _ := newServer(t)

	created := decode(t, do(router, http.MethodPost, "/festivals", festivalBody(), nil))
	id, _ := created["id"].(string)

	first := do(router, http.MethodGet, "/festivals/"+id, nil, nil)
	lastModified := first.Header().Get("Last-Modified")
	require.NotEmpty(t, lastModified)

	// The representation from the first GET is still fresh.
	w := do(router, http.MethodGet, "/festivals/"+id, nil, map[string]string{
		"If-Modified-Since": lastModified,
	})
	require.Equal(t, http.StatusNotModified, w.Code)
	require.Empty(t, w.Body.Bytes())

	// An older copy must be refreshed.
	stale := time.Now().UTC().Add(-time.Hour).Format(http.TimeFormat)
	w = do(router, http.MethodGet, "/festivals/"+id, nil, map[string]string{
		"If-Modified-Since": stale,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, lastModified, w.Header().Get("Last-Modified"))

	// An unparseable date falls back to a full response.
	w = do(router, http.MethodGet, "/festivals/"+id, nil, map[string]string{
		"If-Modified-Since": "yesterday-ish",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGet_NotFound(t *testing.T) {
	router, _, _ := newServer(t)

	w := do(router, http.MethodGet, "/festivals/"+uuid.NewString(), nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Not found", decode(t, w)["message"])

	w = do(router, http.MethodGet, "/festivals/not-a-uuid", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestList_Envelope(t *testing.T) {
	router, _, _ := newServer(t)

	for i := 0; i < 3; i++ {
		do(router, http.MethodPost, "/festivals", festivalBody(), nil)
	}

	w := do(router, http.MethodGet, "/festivals?page=1&limit=2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Items      []map[string]any `json:"items"`
		Links      map[string]any   `json:"_links"`
		Pagination struct {
			CurrentPage int `json:"currentPage"`
			TotalPages  int `json:"totalPages"`
			TotalItems  int `json:"totalItems"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Items, 2)
	require.Equal(t, 1, envelope.Pagination.CurrentPage)
	require.Equal(t, 2, envelope.Pagination.TotalPages)
	require.Equal(t, 3, envelope.Pagination.TotalItems)
	require.NotContains(t, envelope.Items[0], "organizer")
}

func TestReplace(t *testing.T) {
	router, _, _ := newServer(t)

	created := decode(t, do(router, http.MethodPost, "/festivals", festivalBody(), nil))
	id, _ := created["id"].(string)

	replacement := map[string]any{
		"name":        "Pinkpop",
		"description": "The oldest one",
		"review":      9.0,
	}
	w := do(router, http.MethodPut, "/festivals/"+id, replacement, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, "Pinkpop", body["name"])
	// Replace swaps the full field set; the old organizer is gone.
	require.NotContains(t, body, "organizer")
}

func TestPatch(t *testing.T) {
	router, _, _ := newServer(t)

	created := decode(t, do(router, http.MethodPost, "/festivals", festivalBody(), nil))
	id, _ := created["id"].(string)

	w := do(router, http.MethodPatch, "/festivals/"+id, map[string]any{"organizer": "ID&T"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, "ID&T", body["organizer"])
	require.Equal(t, "Lowlands", body["name"])
}

func TestPatch_EmptiedRequiredField(t *testing.T) {
	router, _, _ := newServer(t)

	created := decode(t, do(router, http.MethodPost, "/festivals", festivalBody(), nil))
	id, _ := created["id"].(string)

	w := do(router, http.MethodPatch, "/festivals/"+id, map[string]any{"name": ""}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Name may not be empty", decode(t, w)["error"])
}

func TestDelete_Twice(t *testing.T) {
	router, _, _ := newServer(t)

	created := decode(t, do(router, http.MethodPost, "/festivals", festivalBody(), nil))
	id, _ := created["id"].(string)

	w := do(router, http.MethodDelete, "/festivals/"+id, nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(router, http.MethodDelete, "/festivals/"+id, nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSeedDirective_RequiresToken(t *testing.T) {
	router, repo, _ := newServer(t)
	do(router, http.MethodPost, "/festivals", festivalBody(), nil)

	w := do(router, http.MethodPost, "/festivals",
		map[string]any{"method": "SEED", "amount": 5}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, `Bearer realm="Festivals API"`, w.Header().Get("WWW-Authenticate"))
	require.Equal(t, "Authorization header is required", decode(t, w)["error"])

	// The collection is untouched on a rejected reseed.
	total, err := repo.Count(context.Background(), festival.Filter{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}

func TestSeedDirective(t *testing.T) {
	router, repo, tokens := newServer(t)
	do(router, http.MethodPost, "/festivals", festivalBody(), nil)

	token, err := tokens.Generate("admin")
	require.NoError(t, err)

	w := do(router, http.MethodPost, "/festivals",
		map[string]any{"method": "seed", "amount": 5},
		map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusCreated, w.Code)

	total, err := repo.Count(context.Background(), festival.Filter{})
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
}

func TestSeedDirective_AmountCoercion(t *testing.T) {
	router, repo, tokens := newServer(t)

	token, err := tokens.Generate("admin")
	require.NoError(t, err)
	auth := map[string]string{"Authorization": "Bearer " + token}

	// A numeric string still counts.
	w := do(router, http.MethodPost, "/festivals",
		map[string]any{"method": "SEED", "amount": "3"}, auth)
	require.Equal(t, http.StatusCreated, w.Code)

	total, err := repo.Count(context.Background(), festival.Filter{})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)

	// Garbage falls back to the default of 10.
	w = do(router, http.MethodPost, "/festivals",
		map[string]any{"method": "SEED", "amount": []any{}}, auth)
	require.Equal(t, http.StatusCreated, w.Code)

	total, err = repo.Count(context.Background(), festival.Filter{})
	require.NoError(t, err)
	require.EqualValues(t, 10, total)
}

func TestSeedRoute(t *testing.T) {
	router, repo, tokens := newServer(t)

	w := do(router, http.MethodPost, "/festivals/seed", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := tokens.Generate("admin")
	require.NoError(t, err)

	w = do(router, http.MethodPost, "/festivals/seed", map[string]any{"amount": 4},
		map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusCreated, w.Code)

	total, err := repo.Count(context.Background(), festival.Filter{})
	require.NoError(t, err)
	require.EqualValues(t, 4, total)
}

func TestOptions(t *testing.T) {
	router, _, _ := newServer(t)

	w := do(router, http.MethodOptions, "/festivals", nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "GET,POST,OPTIONS", w.Header().Get("Allow"))

	w = do(router, http.MethodOptions, "/festivals/"+uuid.NewString(), nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "GET,PUT,PATCH,DELETE,OPTIONS", w.Header().Get("Allow"))
}

func TestAccept_NonJSONRejected(t *testing.T) {
	router, _, _ := newServer(t)

	w := do(router, http.MethodGet, "/festivals", nil, map[string]string{
		"Accept": "text/html",
	})
	require.Equal(t, http.StatusNotAcceptable, w.Code)

	w = do(router, http.MethodGet, "/festivals", nil, map[string]string{
		"Accept": "text/html, application/json;q=0.8",
	})
	require.Equal(t, http.StatusOK, w.Code)
}
