// Package site serves the built front-end and a small read API over the
// snapshot document.
package site

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"bloghub/internal/feed"
	"bloghub/internal/normalize"
	"bloghub/pkg/models"
)

// Repo holds the snapshot's eligible records in memory, ordered
// newest-first by effective timestamp. Raw records are kept rather than
// pre-normalized articles, because normalization is locale-dependent and
// cheap enough to do per request.
type Repo struct {
	Path string

	mu          sync.RWMutex
	records     []models.ContentRecord
	generatedAt string
}

func NewRepo(path string) *Repo {
	return &Repo{Path: path}
}

// Load reads (or re-reads, after a refresh) the snapshot file.
func (r *Repo) Load() error {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var doc models.SnapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	eligible := make([]models.ContentRecord, 0, len(doc.Results))
	for _, rec := range doc.Results {
		if rec.Object == models.ObjectPage {
			eligible = append(eligible, rec)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return normalize.EffectiveTimestamp(eligible[i]) > normalize.EffectiveTimestamp(eligible[j])
	})

	r.mu.Lock()
	r.records = eligible
	r.generatedAt = doc.GeneratedAt
	r.mu.Unlock()
	return nil
}

// Total returns the number of eligible records.
func (r *Repo) Total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// GeneratedAt returns the snapshot's build timestamp.
func (r *Repo) GeneratedAt() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generatedAt
}

// List returns one window of normalized articles plus the total count.
func (r *Repo) List(locale string, limit, offset int) ([]models.DisplayArticle, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.records)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	if limit <= 0 {
		limit = feed.ListPageSize
	}
	end := offset + limit
	if end > total {
		end = total
	}

	out := make([]models.DisplayArticle, 0, end-offset)
	for _, rec := range r.records[offset:end] {
		out = append(out, normalize.Normalize(rec, locale))
	}
	return out, total
}

// Preview returns the newest n articles for the homepage preview.
func (r *Repo) Preview(locale string, n int) []models.DisplayArticle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.DisplayArticle, 0, len(r.records))
	for _, rec := range r.records {
		all = append(all, normalize.Normalize(rec, locale))
	}
	return feed.SelectTop(all, n)
}

// Get returns the normalized article with the given id, or nil.
func (r *Repo) Get(locale, id string) *models.DisplayArticle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID == id {
			a := normalize.Normalize(rec, locale)
			return &a
		}
	}
	return nil
}
