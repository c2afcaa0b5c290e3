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

	"bloghub/internal/site"
	"bloghub/internal/snapshot"
	"bloghub/pkg/utils"
)

func main() {
	cfg, err := utils.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	repo := site.NewRepo(filepath.Join(cfg.SiteDir, "data", snapshot.ArticlesFile))
	if err := repo.Load(); err != nil {
		log.Fatalf("load snapshot: %v (run cmd/snapshot first)", err)
	}
	log.Printf("serving %d articles (snapshot generated %s)", repo.Total(), repo.GeneratedAt())

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"articles":     repo.Total(),
			"generated_at": repo.GeneratedAt(),
		})
	})

	handler := site.NewHandler(repo)
	handler.RegisterRoutes(router.Group("/api/articles"))
	site.RegisterStatic(router, cfg.SiteDir)

	httpSrv := &http.Server{
		Addr:    cfg.SiteAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("site server listening on %s", cfg.SiteAddr)
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
