package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/pkg/models"
)

func titleProp(text string) models.Property {
	return models.Property{
		Type:  models.PropertyTitle,
		Title: []models.RichText{{PlainText: text}},
	}
}

func dateProp(start string) models.Property {
	return models.Property{
		Type: models.PropertyDate,
		Date: &models.DateValue{Start: start},
	}
}

// writeSnapshot writes a snapshot document with three pages (out of
// timestamp order) and one non-page record, and returns its path.
func writeSnapshot(t *testing.T) string {
	t.Helper()

	doc := models.SnapshotDoc{
		Results: []models.ContentRecord{
			{
				Object: "page",
				ID:     "old",
				Properties: map[string]models.Property{
					"Name": titleProp("Oldest"),
					"日期":   dateProp("2023-01-01"),
				},
			},
			{
				Object: "database",
				ID:     "not-a-page",
			},
			{
				Object: "page",
				ID:     "new",
				Properties: map[string]models.Property{
					"Name": titleProp("Newest"),
					"日期":   dateProp("2024-06-01"),
					"slug": {
						Type:     models.PropertyRichText,
						RichText: []models.RichText{{PlainText: "English Newest"}},
					},
				},
			},
			{
				Object: "page",
				ID:     "mid",
				Properties: map[string]models.Property{
					"Name": titleProp("Middle"),
					"日期":   dateProp("2023-09-01"),
				},
			},
		},
		Total:       4,
		GeneratedAt: "2024-06-02T00:00:00Z",
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "articles.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func loadedRepo(t *testing.T) *Repo {
	t.Helper()
	repo := NewRepo(writeSnapshot(t))
	require.NoError(t, repo.Load())
	return repo
}

func TestRepo_LoadFiltersAndOrders(t *testing.T) {
	repo := loadedRepo(t)

	assert.Equal(t, 3, repo.Total())
	assert.Equal(t, "2024-06-02T00:00:00Z", repo.GeneratedAt())

	items, total := repo.List("zh", 10, 0)
	require.Equal(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "mid", items[1].ID)
	assert.Equal(t, "old", items[2].ID)
}

func TestRepo_LoadMissingFile(t *testing.T) {
	repo := NewRepo(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, repo.Load())
}

func TestRepo_ListWindows(t *testing.T) {
	repo := loadedRepo(t)

	items, total := repo.List("zh", 2, 0)
	assert.Equal(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)

	items, _ = repo.List("zh", 2, 2)
	require.Len(t, items, 1)
	assert.Equal(t, "old", items[0].ID)

	// offset past the end is an empty window, not an error
	items, _ = repo.List("zh", 2, 10)
	assert.Empty(t, items)
}

func TestRepo_ListLocale(t *testing.T) {
	repo := loadedRepo(t)

	zh, _ := repo.List("zh", 10, 0)
	assert.Equal(t, "Newest", zh[0].Title)

	en, _ := repo.List("en", 10, 0)
	assert.Equal(t, "English Newest", en[0].Title)
}

func TestRepo_Preview(t *testing.T) {
	repo := loadedRepo(t)

	items := repo.Preview("zh", 2)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "mid", items[1].ID)
}

func TestRepo_Get(t *testing.T) {
	repo := loadedRepo(t)

	a := repo.Get("zh", "mid")
	require.NotNil(t, a)
	assert.Equal(t, "Middle", a.Title)

	assert.Nil(t, repo.Get("zh", "nope"))
}

func TestRepo_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")

	write := func(ids ...string) {
		doc := models.SnapshotDoc{GeneratedAt: "2024-01-01T00:00:00Z"}
		for _, id := range ids {
			doc.Results = append(doc.Results, models.ContentRecord{
				Object:     "page",
				ID:         id,
				Properties: map[string]models.Property{"Name": titleProp(id)},
			})
		}
		doc.Total = len(doc.Results)
		data, err := json.Marshal(doc)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}

	write("a")
	repo := NewRepo(path)
	require.NoError(t, repo.Load())
	assert.Equal(t, 1, repo.Total())

	write("a", "b")
	require.NoError(t, repo.Load())
	assert.Equal(t, 2, repo.Total())
}
