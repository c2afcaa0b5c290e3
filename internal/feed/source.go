// Package feed drives incremental article loading: a dual-mode source
// adapter (static snapshot vs. live paginated queries), a deterministic
// ordering policy, and the pagination session the presentation layer
// consumes.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"bloghub/internal/notion"
	"bloghub/pkg/models"
)

// Page sizes. The listing page loads ten at a time; the homepage preview
// shows the top four.
const (
	ListPageSize    = 10
	PreviewPageSize = 4
)

// Page is one fetched page of raw records. Both source modes produce this
// shape so the session is mode-agnostic. NextCursor is opaque to callers:
// a continuation token in live mode, an encoded page index in snapshot
// mode.
type Page struct {
	Items      []models.ContentRecord
	HasMore    bool
	NextCursor string
}

// Source abstracts the two data-acquisition strategies. A source belongs
// to exactly one session; implementations may keep per-session state
// (cached snapshot, rejected sort fields) behind their own lock.
// Errors are surfaced as-is, retry-free.
type Source interface {
	FetchPage(ctx context.Context, cursor string) (*Page, error)
}

// filterEligible drops records that are not displayable pages.
func filterEligible(in []models.ContentRecord) []models.ContentRecord {
	out := make([]models.ContentRecord, 0, len(in))
	for _, r := range in {
		if r.Object == models.ObjectPage {
			out = append(out, r)
		}
	}
	return out
}

// SnapshotSource serves pages from the pre-built static document. The
// document is fetched once per session on the first call and paged in
// memory afterwards; a failed initial fetch is a hard stop.
type SnapshotSource struct {
	URL      string
	PageSize int
	HTTP     *http.Client

	mu      sync.Mutex
	records []models.ContentRecord
	loaded  bool
}

// NewSnapshotSource creates a snapshot source for the document at
// baseURL + "/data/articles.json".
func NewSnapshotSource(baseURL string, pageSize int) *SnapshotSource {
	return &SnapshotSource{
		URL:      baseURL + "/data/articles.json",
		PageSize: pageSize,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SnapshotSource) FetchPage(ctx context.Context, cursor string) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.load(ctx); err != nil {
			return nil, err
		}
		s.loaded = true
	}

	page := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad snapshot cursor %q", cursor)
		}
		page = n
	}

	start := page * s.PageSize
	if start > len(s.records) {
		start = len(s.records)
	}
	end := start + s.PageSize
	if end > len(s.records) {
		end = len(s.records)
	}

	out := &Page{
		Items:   s.records[start:end],
		HasMore: end < len(s.records),
	}
	if out.HasMore {
		out.NextCursor = strconv.Itoa(page + 1)
	}
	return out, nil
}

func (s *SnapshotSource) load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return fmt.Errorf("build snapshot request: %w", err)
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return &notion.TransportError{Msg: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &notion.NotFoundError{Resource: "snapshot document"}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &notion.TransportError{Status: resp.StatusCode, Msg: "snapshot fetch failed"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &notion.TransportError{Msg: fmt.Sprintf("read snapshot: %v", err)}
	}
	var doc models.SnapshotDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return &notion.TransportError{Msg: fmt.Sprintf("decode snapshot: %v", err)}
	}

	s.records = filterEligible(doc.Results)
	return nil
}

// sortCandidates is the ordered list of sort specifications live mode
// tries. The upstream field name for "publish date" is not knowable in
// advance; candidates are advanced past only on a 400-class rejection.
// The provider-managed timestamp sort comes last and should always be
// accepted.
var sortCandidates = []models.SortSpec{
	{Property: "PublishDate", Direction: "descending"},
	{Property: "发布日期", Direction: "descending"},
	{Property: "日期", Direction: "descending"},
	{Property: "Date", Direction: "descending"},
	{Timestamp: "last_edited_time", Direction: "descending"},
}

// LiveSource issues one query per page against the same-origin proxy,
// carrying the continuation cursor forward. Rejected sort candidates stay
// rejected for the lifetime of the source, so a field that 400ed once is
// never retried within the session.
type LiveSource struct {
	BaseURL  string // same-origin root, e.g. "" in the browser or an httptest URL in tests
	SourceID string
	PageSize int
	HTTP     *http.Client

	mu        sync.Mutex
	candidate int // index of the first not-yet-rejected sort candidate
}

// NewLiveSource creates a live source querying the proxy mounted under
// baseURL for the given data source.
func NewLiveSource(baseURL, sourceID string, pageSize int) *LiveSource {
	return &LiveSource{
		BaseURL:  baseURL,
		SourceID: sourceID,
		PageSize: pageSize,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *LiveSource) FetchPage(ctx context.Context, cursor string) (*Page, error) {
	if s.SourceID == "" {
		return nil, &notion.ConfigError{Missing: "data source id"}
	}

	s.mu.Lock()
	start := s.candidate
	s.mu.Unlock()

	for i := start; i < len(sortCandidates); i++ {
		resp, err := s.query(ctx, cursor, sortCandidates[i])
		if err == nil {
			return &Page{
				Items:      filterEligible(resp.Results),
				HasMore:    resp.HasMore,
				NextCursor: resp.NextCursor,
			}, nil
		}

		var schemaErr *notion.SchemaError
		if errors.As(err, &schemaErr) {
			// This candidate's field name is unknown upstream. Remember
			// the rejection and try the next one for this same page.
			s.mu.Lock()
			if i+1 > s.candidate {
				s.candidate = i + 1
			}
			s.mu.Unlock()
			continue
		}
		return nil, err
	}

	return nil, &notion.TransportError{Msg: "all sort field candidates rejected"}
}

func (s *LiveSource) query(ctx context.Context, cursor string, sort models.SortSpec) (*models.QueryResponse, error) {
	payload, err := json.Marshal(models.QueryRequest{
		PageSize:    s.PageSize,
		StartCursor: cursor,
		Sorts:       []models.SortSpec{sort},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	url := s.BaseURL + "/api/content/sources/" + s.SourceID + "/query"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, &notion.TransportError{Msg: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &notion.TransportError{Msg: fmt.Sprintf("read query response: %v", err)}
	}

	if resp.StatusCode == http.StatusBadRequest {
		return nil, &notion.SchemaError{Field: sort.Property, Msg: errorMessage(body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &notion.TransportError{Status: resp.StatusCode, Msg: errorMessage(body)}
	}

	var out models.QueryResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &notion.TransportError{Msg: fmt.Sprintf("decode query response: %v", err)}
	}
	return &out, nil
}

func errorMessage(body []byte) string {
	var m struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &m)
	if m.Error != "" {
		return m.Error
	}
	if m.Message != "" {
		return m.Message
	}
	return "upstream error"
}
