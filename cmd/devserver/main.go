package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"bloghub/internal/auth"
	"bloghub/internal/notion"
	"bloghub/internal/proxy"
	"bloghub/internal/reload"
	"bloghub/internal/site"
	"bloghub/internal/snapshot"
	"bloghub/pkg/utils"
)

func main() {
	cfg, err := utils.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Same-origin provider proxy. Without an API key the endpoints stay
	// mounted but answer with a configuration error, like the original
	// dev middleware.
	var client *notion.Client
	if cfg.NotionAPIKey != "" {
		client = notion.NewClient(cfg.NotionAPIKey)
	} else {
		log.Println("[devserver] NOTION_API_KEY not set; proxy endpoints disabled")
	}
	proxyHandler := proxy.NewHandler(client)
	proxyHandler.RegisterRoutes(router.Group("/api/content"))

	// Snapshot-backed read API, when a snapshot has been built already.
	snapshotPath := filepath.Join(cfg.SiteDir, "data", snapshot.ArticlesFile)
	repo := site.NewRepo(snapshotPath)
	if err := repo.Load(); err != nil {
		log.Printf("[devserver] no snapshot yet (%v); /api/articles disabled until refresh", err)
	}
	siteHandler := site.NewHandler(repo)
	siteHandler.RegisterRoutes(router.Group("/api/articles"))
	router.Static("/data", filepath.Join(cfg.SiteDir, "data"))

	// Reload notifications for open dev pages.
	hub := reload.NewHub()
	router.GET("/ws", reload.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"proxy":      client != nil,
			"snapshot":   repo.Total(),
			"ws_clients": hub.Stats().Clients,
		})
	})

	// Admin: login + on-demand snapshot rebuild.
	tokens := auth.TokenService{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Duration: cfg.JWTTTL,
	}
	authHandler := auth.NewHandler(tokens, cfg.AdminPasswordHash)
	admin := router.Group("/admin")
	authHandler.RegisterRoutes(admin)

	admin.POST("/refresh", auth.AdminMiddleware(tokens), func(c *gin.Context) {
		if client == nil || cfg.SourceID == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "provider not configured"})
			return
		}

		builder := &snapshot.Builder{
			Client:   client,
			SourceID: cfg.SourceID,
			OutDir:   filepath.Join(cfg.SiteDir, "data"),
		}
		doc, err := builder.Build(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if err := repo.Load(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		hub.BroadcastJSON(reload.NewSnapshotEvent(doc.Total, doc.GeneratedAt))
		c.JSON(http.StatusOK, gin.H{
			"total":        doc.Total,
			"generated_at": doc.GeneratedAt,
		})
	})

	httpSrv := &http.Server{
		Addr:    cfg.DevAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("dev server listening on %s", cfg.DevAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
