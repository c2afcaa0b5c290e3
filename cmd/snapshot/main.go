package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"time"

	"bloghub/internal/notion"
	"bloghub/internal/snapshot"
	"bloghub/pkg/database"
	"bloghub/pkg/utils"
)

func main() {
	var (
		outDir      = flag.String("out", "", "output directory (default <site dir>/data)")
		withContent = flag.Bool("content", true, "also fetch page block content")
		useCache    = flag.Bool("cache", true, "reuse cached block content for unchanged pages")
		timeout     = flag.Duration("timeout", 5*time.Minute, "overall fetch timeout")
	)
	flag.Parse()

	cfg, err := utils.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.NotionAPIKey == "" {
		log.Fatal("NOTION_API_KEY not set")
	}
	if cfg.SourceID == "" {
		log.Fatal("NOTION_SOURCE_ID not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	builder := &snapshot.Builder{
		Client:      notion.NewClient(cfg.NotionAPIKey),
		SourceID:    cfg.SourceID,
		OutDir:      *outDir,
		WithContent: *withContent,
	}
	if builder.OutDir == "" {
		builder.OutDir = filepath.Join(cfg.SiteDir, "data")
	}

	if *useCache && *withContent {
		db := database.MustOpen(database.DefaultConfig())
		defer db.Close()
		if err := database.Migrate(db); err != nil {
			log.Fatalf("db migrate failed: %v", err)
		}
		builder.Cache = snapshot.NewStore(db)
	}

	doc, err := builder.Build(ctx)
	if err != nil {
		log.Fatalf("snapshot build failed: %v", err)
	}

	log.Printf("✅ snapshot written to %s (%d records, generated %s)",
		builder.OutDir, doc.Total, doc.GeneratedAt)
}
