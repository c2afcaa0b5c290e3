package site

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := loadedRepo(t)
	router := gin.New()
	NewHandler(repo).RegisterRoutes(router.Group("/api/articles"))
	return router
}

func get(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandler_List(t *testing.T) {
	router := newTestRouter(t)

	w, body := get(t, router, "/api/articles?limit=2&offset=0")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `3`, string(body["total"]))
	assert.JSONEq(t, `true`, string(body["has_more"]))

	var items []map[string]any
	require.NoError(t, json.Unmarshal(body["items"], &items))
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0]["id"])
}

func TestHandler_ListLastWindow(t *testing.T) {
	router := newTestRouter(t)

	w, body := get(t, router, "/api/articles?limit=2&offset=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `false`, string(body["has_more"]))
}

func TestHandler_ListBadParamsFallBack(t *testing.T) {
	router := newTestRouter(t)

	// junk limit/offset fall back to defaults instead of erroring
	w, body := get(t, router, "/api/articles?limit=abc&offset=-5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `10`, string(body["limit"]))
}

func TestHandler_Preview(t *testing.T) {
	router := newTestRouter(t)

	w, body := get(t, router, "/api/articles/preview?limit=2")
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(body["items"], &items))
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0]["id"])
}

func TestHandler_GetByID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/articles/mid?locale=zh", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Middle")

	req = httptest.NewRequest(http.MethodGet, "/api/articles/nope", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_LocaleQuery(t *testing.T) {
	router := newTestRouter(t)

	_, body := get(t, router, "/api/articles?locale=en")
	var items []map[string]any
	require.NoError(t, json.Unmarshal(body["items"], &items))
	assert.Equal(t, "English Newest", items[0]["title"])
}
