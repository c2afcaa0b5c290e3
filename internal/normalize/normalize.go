// Package normalize maps raw, schema-flexible content records into the
// stable DisplayArticle shape. Everything here is pure and total: the
// upstream schema is operator-edited, so missing or oddly-typed fields
// degrade to empty values instead of erroring.
package normalize

import (
	"strings"
	"time"

	"bloghub/pkg/models"
)

// UI locales. Chinese is the default; English is the override locale.
const (
	LocaleZH = "zh"
	LocaleEN = "en"
)

// Alias tables: the upstream field name for each logical attribute is not
// fixed, so each attribute has an ordered candidate list and exactly the
// first matching alias wins. Kept as data so the resolution order is
// testable in isolation.
var (
	SummaryAliases  = []string{"summary", "摘要", "Summary", "描述", "Description"}
	DateAliases     = []string{"日期", "Date", "发布日期", "PublishDate"}
	CategoryAliases = []string{"分类", "Category", "类别"}
	TagAliases      = []string{"标签", "Tags", "tags"}
	SlugAliases     = []string{"slug", "Slug"}
)

const untitled = "Untitled"

// Normalize produces the display model for one record under the given UI
// locale. It never fails; callers can feed it anything that decoded.
func Normalize(rec models.ContentRecord, locale string) models.DisplayArticle {
	props := rec.Properties

	title := ExtractTitle(rec)
	slug := ExtractText(props, SlugAliases...)

	// Slug-as-English-title convention: when the UI is not in the default
	// locale and the slug field carries text, it supersedes the canonical
	// (usually Chinese) title.
	if locale != "" && locale != LocaleZH && slug != "" {
		title = slug
	}

	var category *models.Tag
	if sel := ExtractSelect(props, CategoryAliases...); sel != nil {
		category = &models.Tag{Name: sel.Name, Color: colorOrDefault(sel.Color)}
	}

	return models.DisplayArticle{
		ID:          rec.ID,
		Title:       title,
		Slug:        slug,
		Summary:     ExtractText(props, SummaryAliases...),
		PublishedAt: EffectiveTimestamp(rec),
		Tags:        ExtractMultiSelect(props, TagAliases...),
		Category:    category,
		CoverURL:    ExtractCover(rec),
		ExternalURL: rec.URL,
	}
}

// ExtractTitle scans the property bag for the first title-kind property
// and joins its plain-text runs. The title property's field name is
// whatever the operator called it, so we match on kind, not name.
func ExtractTitle(rec models.ContentRecord) string {
	for _, p := range rec.Properties {
		if p.Type != models.PropertyTitle || len(p.Title) == 0 {
			continue
		}
		if s := joinRuns(p.Title); s != "" {
			return s
		}
	}
	return untitled
}

// ExtractText returns the plain text of the first alias that resolves to
// a rich-text property, or "" when none match.
func ExtractText(props map[string]models.Property, aliases ...string) string {
	for _, name := range aliases {
		p, ok := props[name]
		if !ok || p.Type != models.PropertyRichText {
			continue
		}
		if s := joinRuns(p.RichText); s != "" {
			return s
		}
	}
	return ""
}

// ExtractDate returns the date-start value of the first alias that
// resolves to a date property, or "" when none match.
func ExtractDate(props map[string]models.Property, aliases ...string) string {
	for _, name := range aliases {
		p, ok := props[name]
		if !ok || p.Type != models.PropertyDate || p.Date == nil {
			continue
		}
		if p.Date.Start != "" {
			return p.Date.Start
		}
	}
	return ""
}

// ExtractSelect returns the select value of the first matching alias.
func ExtractSelect(props map[string]models.Property, aliases ...string) *models.SelectOption {
	for _, name := range aliases {
		p, ok := props[name]
		if !ok || p.Type != models.PropertySelect || p.Select == nil || p.Select.Name == "" {
			continue
		}
		return p.Select
	}
	return nil
}

// ExtractMultiSelect maps the first matching multi-select alias into
// tags. Unset colors become "default"; unknown color strings are kept so
// the presentation lookup can fall back without losing the value.
func ExtractMultiSelect(props map[string]models.Property, aliases ...string) []models.Tag {
	for _, name := range aliases {
		p, ok := props[name]
		if !ok || p.Type != models.PropertyMultiSelect {
			continue
		}
		tags := make([]models.Tag, 0, len(p.MultiSelect))
		for _, opt := range p.MultiSelect {
			if opt.Name == "" {
				continue
			}
			tags = append(tags, models.Tag{Name: opt.Name, Color: colorOrDefault(opt.Color)})
		}
		return tags
	}
	return nil
}

// ExtractURL returns the url value of the first matching alias.
func ExtractURL(props map[string]models.Property, aliases ...string) string {
	for _, name := range aliases {
		p, ok := props[name]
		if !ok || p.Type != models.PropertyURL {
			continue
		}
		if p.URL != "" {
			return p.URL
		}
	}
	return ""
}

// ExtractCover resolves the cover image URL, external or provider-hosted.
func ExtractCover(rec models.ContentRecord) string {
	c := rec.Cover
	if c == nil {
		return ""
	}
	switch c.Type {
	case "external":
		if c.External != nil {
			return c.External.URL
		}
	case "file":
		if c.File != nil {
			return c.File.URL
		}
	}
	return ""
}

// EffectiveTimestamp derives the ordering timestamp for a record in epoch
// milliseconds: the first date alias that resolves, else the last-edited
// time, else the created time, else 0. Upstream sort orders are
// unreliable across property-name variants, so ordering is always
// re-derived from this value client-side.
func EffectiveTimestamp(rec models.ContentRecord) int64 {
	if s := ExtractDate(rec.Properties, DateAliases...); s != "" {
		if ms := parseMillis(s); ms != 0 {
			return ms
		}
	}
	if ms := parseMillis(rec.LastEditedTime); ms != 0 {
		return ms
	}
	return parseMillis(rec.CreatedTime)
}

func parseMillis(s string) int64 {
	if s == "" {
		return 0
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UnixMilli()
	}
	// bare dates ("2024-05-01") are common for hand-entered fields
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UnixMilli()
	}
	return 0
}

func joinRuns(runs []models.RichText) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.PlainText)
	}
	return b.String()
}

func colorOrDefault(c string) string {
	if c == "" {
		return ColorDefault
	}
	return c
}
