package models

// SortSpec is one entry of a query sort specification. Either Property
// (a human-assigned field name) or Timestamp (a provider-managed
// timestamp name like "last_edited_time") is set, never both.
type SortSpec struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// QueryRequest is the body of a paginated data-source query.
type QueryRequest struct {
	PageSize    int        `json:"page_size,omitempty"`
	StartCursor string     `json:"start_cursor,omitempty"`
	Sorts       []SortSpec `json:"sorts,omitempty"`
}

// QueryResponse is one page of query results. NextCursor is opaque;
// pass it back unchanged to resume.
type QueryResponse struct {
	Results    []ContentRecord `json:"results"`
	HasMore    bool            `json:"has_more"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// SnapshotDoc is the pre-built static document the production site serves
// from /data/articles.json. Written by the snapshot builder, consumed by
// the snapshot source.
type SnapshotDoc struct {
	Results     []ContentRecord `json:"results"`
	Total       int             `json:"total"`
	GeneratedAt string          `json:"generated_at"`
}
