package site

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"bloghub/internal/feed"
	"bloghub/internal/normalize"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)            // GET /api/articles
	rg.GET("/preview", h.preview) // GET /api/articles/preview
	rg.GET("/:id", h.getByID)     // GET /api/articles/:id
}

func (h *Handler) list(c *gin.Context) {
	limit := parseInt(c.Query("limit"), feed.ListPageSize)
	offset := parseInt(c.Query("offset"), 0)
	locale := localeOf(c)

	items, total := h.Repo.List(locale, limit, offset)
	c.JSON(http.StatusOK, gin.H{
		"total":        total,
		"limit":        limit,
		"offset":       offset,
		"has_more":     offset+len(items) < total,
		"generated_at": h.Repo.GeneratedAt(),
		"items":        items,
	})
}

func (h *Handler) preview(c *gin.Context) {
	n := parseInt(c.Query("limit"), feed.PreviewPageSize)
	c.JSON(http.StatusOK, gin.H{
		"items": h.Repo.Preview(localeOf(c), n),
	})
}

func (h *Handler) getByID(c *gin.Context) {
	a := h.Repo.Get(localeOf(c), c.Param("id"))
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}

func localeOf(c *gin.Context) string {
	if l := c.Query("locale"); l != "" {
		return l
	}
	return normalize.LocaleZH
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// RegisterStatic wires the built front-end: static assets, the snapshot
// documents under /data, and an index.html fallback for client-side
// routes.
func RegisterStatic(router *gin.Engine, dir string) {
	router.Static("/assets", filepath.Join(dir, "assets"))
	router.Static("/data", filepath.Join(dir, "data"))
	router.StaticFile("/", filepath.Join(dir, "index.html"))

	router.NoRoute(func(c *gin.Context) {
		// API misses stay 404; everything else is a client route
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
}
