package models

// Tag is a named label with a provider color token.
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DisplayArticle is the normalized, internal form of an article used by
// the pagination layer and the read API.
//
// All raw content records are mapped into this structure first; it is the
// only shape presentation code sees. Instances are value-copied and never
// mutated after normalization; a language switch re-normalizes instead,
// because title and summary may come from locale-specific fields.
type DisplayArticle struct {
	ID          string `json:"id"`                     // provider page id
	Title       string `json:"title"`                  // "Untitled" when absent
	Slug        string `json:"slug,omitempty"`         // optional URL-ish identifier
	Summary     string `json:"summary"`                // empty when absent
	PublishedAt int64  `json:"published_at"`           // effective timestamp, epoch millis, 0 if undeterminable
	Tags        []Tag  `json:"tags"`                   // multi-select entries
	Category    *Tag   `json:"category,omitempty"`     // select entry
	CoverURL    string `json:"cover_url,omitempty"`    // cover image URL (if any)
	ExternalURL string `json:"external_url,omitempty"` // link to the hosted page
}
