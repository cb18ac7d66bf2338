package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog-api/internal/domains/author"
	"book-catalog-api/internal/domains/author/authortest"
	"book-catalog-api/internal/domains/book/booktest"
	"book-catalog-api/internal/domains/book/service"
	"book-catalog-api/internal/shared/middleware"
	"book-catalog-api/internal/shared/pagination"
)

func newRouter(t *testing.T) (*gin.Engine, *author.Author) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authors := authortest.NewMemoryRepository()
	a, err := authors.Insert(context.Background(), &author.AuthorWithCredential{
		Author:       author.Author{ID: uuid.New(), Email: "a@b.com", Name: "Ann", Country: "SPAIN"},
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	h := NewBookHandler(service.NewBookService(booktest.NewMemoryRepository(authors)), pagination.New(10, 0))

	r := gin.New()
	r.Use(middleware.ErrorReporter())
	g := r.Group("/book")
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.GET("/title/:title", h.GetByTitle)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r, a
}

func serve(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBookEndpoints(t *testing.T) {
	r, a := newRouter(t)

	rec := serve(r, http.MethodPost, "/book", gin.H{
		"title":     "Dune",
		"author":    a.ID.String(),
		"pages":     412,
		"publisher": gin.H{"name": "Chilton", "country": "usa"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created["id"].(string)
	expanded := created["author"].(map[string]interface{})
	assert.Equal(t, "Ann", expanded["name"])
	assert.NotContains(t, expanded, "password")
	assert.Equal(t, "USA", created["publisher"].(map[string]interface{})["country"])

	rec = serve(r, http.MethodGet, "/book/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Ann"`)

	rec = serve(r, http.MethodGet, "/book/title/Dune", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var byTitle []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byTitle))
	assert.Len(t, byTitle, 1)

	rec = serve(r, http.MethodPut, "/book/"+id, gin.H{"pages": 500})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Dune"`)
	assert.Contains(t, rec.Body.String(), `"pages":500`)

	rec = serve(r, http.MethodGet, "/book?limit=5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `1`, mustField(t, rec, "totalItems"))
	assert.JSONEq(t, `1`, mustField(t, rec, "currentPage"))

	rec = serve(r, http.MethodDelete, "/book/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id)

	rec = serve(r, http.MethodGet, "/book/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "{}", rec.Body.String())
}

func TestBookNotFoundBodies(t *testing.T) {
	r, _ := newRouter(t)
	missing := uuid.NewString()

	rec := serve(r, http.MethodGet, "/book/title/Nothing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/book/" + missing},
		{http.MethodGet, "/book/garbage"},
		{http.MethodPut, "/book/" + missing},
		{http.MethodDelete, "/book/" + missing},
	} {
		rec := serve(r, tc.method, tc.path, gin.H{"pages": 10})
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method+" "+tc.path)
		assert.Equal(t, "{}", rec.Body.String())
	}
}

func TestBookValidation(t *testing.T) {
	r, _ := newRouter(t)

	rec := serve(r, http.MethodPost, "/book", gin.H{"title": "Dune", "pages": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Un libro tiene que tener mínimo una página.")

	rec = serve(r, http.MethodPost, "/book", gin.H{"title": "Dune", "author": uuid.NewString()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Autor no encontrado")

	rec = serve(r, http.MethodPost, "/book", gin.H{"title": "Dune", "pages": "many"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func mustField(t *testing.T, rec *httptest.ResponseRecorder, field string) string {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, field)
	return string(body[field])
}
