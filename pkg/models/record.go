package models

// Property kinds used by the content provider. A property carries exactly
// one of the value fields below, selected by Type.
const (
	PropertyTitle       = "title"
	PropertyRichText    = "rich_text"
	PropertySelect      = "select"
	PropertyMultiSelect = "multi_select"
	PropertyDate        = "date"
	PropertyPeople      = "people"
	PropertyURL         = "url"
)

// ObjectPage is the only record kind eligible for display. Anything else
// (databases, partial blocks) is filtered out before normalization.
const ObjectPage = "page"

// RichText is a single run of formatted text. Only the plain-text
// projection matters to us.
type RichText struct {
	PlainText string `json:"plain_text,omitempty"`
}

// SelectOption is one select / multi-select entry. Color is a provider
// color token ("gray", "blue", ...); unknown tokens are kept as-is and
// the presentation layer falls back to a default style.
type SelectOption struct {
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// DateValue is a provider date property value. Start is ISO-8601, either
// a bare date or a full timestamp.
type DateValue struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Person is a people property entry.
type Person struct {
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Property is the tagged union of provider property values. The schema is
// operator-edited, so every field is optional and readers must check Type.
type Property struct {
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	People      []Person       `json:"people,omitempty"`
	URL         string         `json:"url,omitempty"`
}

// FileRef is an image/file reference, either provider-hosted or external.
type FileRef struct {
	URL string `json:"url,omitempty"`
}

// Cover is a page cover image. Type selects which reference is set.
type Cover struct {
	Type     string   `json:"type,omitempty"`
	External *FileRef `json:"external,omitempty"`
	File     *FileRef `json:"file,omitempty"`
}

// Icon is a page icon (emoji or image).
type Icon struct {
	Type     string   `json:"type,omitempty"`
	Emoji    string   `json:"emoji,omitempty"`
	External *FileRef `json:"external,omitempty"`
}

// ContentRecord is the raw, schema-flexible unit of content from the
// external provider. Field names inside Properties are human-assigned and
// may use any of several localized aliases for the same logical attribute,
// so nothing here is read directly by presentation code; records go
// through the normalizer first.
type ContentRecord struct {
	Object         string              `json:"object"`
	ID             string              `json:"id"`
	URL            string              `json:"url,omitempty"`
	CreatedTime    string              `json:"created_time,omitempty"`
	LastEditedTime string              `json:"last_edited_time,omitempty"`
	Cover          *Cover              `json:"cover,omitempty"`
	Icon           *Icon               `json:"icon,omitempty"`
	Properties     map[string]Property `json:"properties,omitempty"`
}
