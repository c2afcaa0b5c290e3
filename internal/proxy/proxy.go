// Package proxy exposes the content provider behind same-origin HTTP
// endpoints for local development, so the browser never sees the API key
// and never fights provider CORS rules. Upstream statuses and bodies are
// forwarded verbatim: the live source's sort-field fallback depends on
// seeing real 400s.
package proxy

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bloghub/internal/notion"
)

type Handler struct {
	Client *notion.Client // nil when no API key is configured
}

func NewHandler(client *notion.Client) *Handler {
	return &Handler{Client: client}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sources/:id/query", h.querySource)
	rg.GET("/pages/:id", h.getPage)
	rg.GET("/blocks/:id/children", h.getBlockChildren)
	rg.POST("/search", h.search)
}

func (h *Handler) querySource(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	id := c.Param("id")
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	h.forward(c, http.MethodPost, "/v1/data_sources/"+id+"/query", body)
}

func (h *Handler) getPage(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	h.forward(c, http.MethodGet, "/v1/pages/"+c.Param("id"), nil)
}

func (h *Handler) getBlockChildren(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	path := "/v1/blocks/" + c.Param("id") + "/children"
	if qs := c.Request.URL.RawQuery; qs != "" {
		path += "?" + qs
	}
	h.forward(c, http.MethodGet, path, nil)
}

func (h *Handler) search(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	h.forward(c, http.MethodPost, "/v1/search", body)
}

func (h *Handler) ready(c *gin.Context) bool {
	if h.Client == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "NOTION_API_KEY not configured"})
		return false
	}
	return true
}

func (h *Handler) forward(c *gin.Context, method, path string, body []byte) {
	rid := uuid.NewString()[:8]
	log.Printf("[proxy] %s %s %s", rid, method, path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	status, respBody, err := h.Client.Do(c.Request.Context(), method, path, reader)
	if err != nil {
		log.Printf("[proxy] %s upstream error: %v", rid, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	log.Printf("[proxy] %s upstream %d (%d bytes)", rid, status, len(respBody))
	c.Data(status, "application/json", respBody)
}
