// Package snapshot pre-fetches the whole content database into static
// JSON documents ahead of a deploy, so the production site renders
// without live API calls.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"bloghub/internal/notion"
	"bloghub/pkg/models"
)

const (
	ArticlesFile = "articles.json"
	ContentFile  = "articles-content.json"
)

// Builder drains the data source and writes the snapshot documents into
// OutDir. With a Store attached, block content of pages whose
// last_edited_time is unchanged is reused instead of refetched.
type Builder struct {
	Client   *notion.Client
	SourceID string
	OutDir   string

	// WithContent also fetches each page's blocks into ContentFile,
	// which feeds the article detail view.
	WithContent bool
	Cache       *Store // optional
}

// pageWithContent is one entry of the content document: the raw record
// plus its block children.
type pageWithContent struct {
	models.ContentRecord
	Content []json.RawMessage `json:"content"`
}

// contentDoc is the shape of articles-content.json.
type contentDoc struct {
	Articles    map[string]pageWithContent `json:"articles"`
	GeneratedAt string                     `json:"generated_at"`
}

// Build fetches everything and writes the snapshot. All pages are
// exhausted before anything is written; both files are written
// atomically (tmp + rename) so a crashed run never leaves a truncated
// document for the site to serve.
func (b *Builder) Build(ctx context.Context) (*models.SnapshotDoc, error) {
	if b.SourceID == "" {
		return nil, &notion.ConfigError{Missing: "data source id"}
	}

	log.Printf("[snapshot] fetching records from source %s", b.SourceID)
	records, err := b.Client.ListAll(ctx, b.SourceID)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	log.Printf("[snapshot] fetched %d records", len(records))

	doc := &models.SnapshotDoc{
		Results:     records,
		Total:       len(records),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := writeJSON(filepath.Join(b.OutDir, ArticlesFile), doc); err != nil {
		return nil, err
	}

	if b.WithContent {
		if err := b.buildContent(ctx, records, doc.GeneratedAt); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func (b *Builder) buildContent(ctx context.Context, records []models.ContentRecord, generatedAt string) error {
	out := contentDoc{
		Articles:    make(map[string]pageWithContent, len(records)),
		GeneratedAt: generatedAt,
	}

	var cached, fetched int
	for _, rec := range records {
		if rec.Object != models.ObjectPage {
			continue
		}

		content, hit, err := b.cachedContent(ctx, rec)
		if err != nil {
			return err
		}
		if hit {
			cached++
		} else {
			content, err = b.Client.ListBlockChildren(ctx, rec.ID)
			if err != nil {
				// mirror the build script: a page whose blocks cannot be
				// listed still appears in the snapshot, just without content
				log.Printf("[snapshot] blocks unavailable for page %s: %v", rec.ID, err)
				content = []json.RawMessage{}
			} else if b.Cache != nil {
				if err := b.Cache.Put(ctx, rec.ID, rec.LastEditedTime, content); err != nil {
					return err
				}
			}
			fetched++
		}

		out.Articles[rec.ID] = pageWithContent{ContentRecord: rec, Content: content}
	}

	log.Printf("[snapshot] page content: %d fetched, %d from cache", fetched, cached)
	return writeJSON(filepath.Join(b.OutDir, ContentFile), out)
}

func (b *Builder) cachedContent(ctx context.Context, rec models.ContentRecord) ([]json.RawMessage, bool, error) {
	if b.Cache == nil || rec.LastEditedTime == "" {
		return nil, false, nil
	}
	return b.Cache.Get(ctx, rec.ID, rec.LastEditedTime)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
