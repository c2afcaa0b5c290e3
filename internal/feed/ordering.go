package feed

import (
	"sort"

	"bloghub/pkg/models"
)

// SortDescending returns the articles ordered newest-first by effective
// timestamp. The sort is stable: articles with equal timestamps keep
// their original fetch order, and articles whose timestamp could not be
// determined (0) end up last.
func SortDescending(articles []models.DisplayArticle) []models.DisplayArticle {
	out := make([]models.DisplayArticle, len(articles))
	copy(out, articles)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt > out[j].PublishedAt
	})
	return out
}

// SelectTop returns the first limit articles of SortDescending. Used for
// the homepage preview.
func SelectTop(articles []models.DisplayArticle, limit int) []models.DisplayArticle {
	sorted := SortDescending(articles)
	if limit < 0 {
		limit = 0
	}
	if limit > len(sorted) {
		limit = len(sorted)
	}
	return sorted[:limit]
}
