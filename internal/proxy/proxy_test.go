package proxy

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/internal/notion"
)

func newRouter(client *notion.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(client).RegisterRoutes(router.Group("/api/content"))
	return router
}

func TestProxy_ForwardsQueryVerbatim(t *testing.T) {
	var gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/data_sources/src-1/query", r.URL.Path)
		require.Equal(t, "Bearer the-key", r.Header.Get("Authorization"))

		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		gotBody = buf.String()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[],"has_more":false}`))
	}))
	defer upstream.Close()

	client := notion.NewClient("the-key")
	client.BaseURL = upstream.URL
	router := newRouter(client)

	req := httptest.NewRequest(http.MethodPost, "/api/content/sources/src-1/query",
		strings.NewReader(`{"page_size":10}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[],"has_more":false}`, rec.Body.String())
	assert.JSONEq(t, `{"page_size":10}`, gotBody)
}

func TestProxy_PassesThroughUpstream400(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"unknown sort property"}`))
	}))
	defer upstream.Close()

	client := notion.NewClient("k")
	client.BaseURL = upstream.URL
	router := newRouter(client)

	req := httptest.NewRequest(http.MethodPost, "/api/content/sources/s/query", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// the sort-candidate fallback needs the raw 400, not a rewrapped error
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown sort property")
}

func TestProxy_WithoutAPIKey(t *testing.T) {
	router := newRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/content/sources/s/query", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOTION_API_KEY")
}

func TestProxy_ForwardsBlockChildrenQueryString(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/blocks/b-1/children", r.URL.Path)
		require.Equal(t, "50", r.URL.Query().Get("page_size"))
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer upstream.Close()

	client := notion.NewClient("k")
	client.BaseURL = upstream.URL
	router := newRouter(client)

	req := httptest.NewRequest(http.MethodGet, "/api/content/blocks/b-1/children?page_size=50", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProxy_UpstreamUnreachable(t *testing.T) {
	client := notion.NewClient("k")
	client.BaseURL = "http://127.0.0.1:1" // nothing listens here
	router := newRouter(client)

	req := httptest.NewRequest(http.MethodGet, "/api/content/pages/p-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
