package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bloghub/pkg/models"
)

const (
	defaultBaseURL = "https://api.notion.com"
	defaultVersion = "2025-09-03"

	// Maximum page size the provider accepts; used when draining a whole
	// data source for the snapshot.
	maxPageSize = 100
)

// Client talks to the content provider's HTTP API. It is used by the
// dev proxy, the snapshot builder and their tests; browser-facing code
// goes through the same-origin proxy instead so the key never leaves the
// server.
//
// The default transport already honors HTTPS_PROXY / HTTP_PROXY, which
// covers the local-proxy setups the provider is often unreachable
// without.
type Client struct {
	BaseURL string
	APIKey  string
	Version string
	HTTP    *http.Client
}

// NewClient creates a Client for the hosted provider API.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		Version: defaultVersion,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Do performs one API request and returns the raw status and body.
// A nil error only means the HTTP exchange completed; the status may
// still be non-2xx. The proxy forwards these verbatim so that 400-class
// sort rejections reach the caller's fallback logic intact.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Notion-Version", c.Version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Msg: err.Error()}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Msg: fmt.Sprintf("read body: %v", err)}
	}
	return resp.StatusCode, b, nil
}

// apiMessage is the error shape the provider returns alongside non-2xx
// statuses.
type apiMessage struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func apiError(status int, body []byte) error {
	var m apiMessage
	_ = json.Unmarshal(body, &m)
	msg := m.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch {
	case status == http.StatusBadRequest:
		return &SchemaError{Msg: msg}
	case status == http.StatusNotFound:
		return &NotFoundError{Resource: msg}
	default:
		return &TransportError{Status: status, Msg: msg}
	}
}

// QueryDataSource runs one paginated query against a data source.
func (c *Client) QueryDataSource(ctx context.Context, sourceID string, q models.QueryRequest) (*models.QueryResponse, error) {
	if sourceID == "" {
		return nil, &ConfigError{Missing: "data source id"}
	}

	payload, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	status, body, err := c.Do(ctx, http.MethodPost, "/v1/data_sources/"+sourceID+"/query", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, apiError(status, body)
	}

	var out models.QueryResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &TransportError{Status: status, Msg: fmt.Sprintf("decode query response: %v", err)}
	}
	return &out, nil
}

// ListAll drains a data source page by page, newest edits first, and
// returns every record. Used by the snapshot builder, which must exhaust
// all pages before writing.
func (c *Client) ListAll(ctx context.Context, sourceID string) ([]models.ContentRecord, error) {
	var (
		all    []models.ContentRecord
		cursor string
	)
	for {
		resp, err := c.QueryDataSource(ctx, sourceID, models.QueryRequest{
			PageSize:    maxPageSize,
			StartCursor: cursor,
			Sorts: []models.SortSpec{
				{Timestamp: "last_edited_time", Direction: "descending"},
			},
		})
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return all, nil
		}
		cursor = resp.NextCursor
	}
}

// blockListResponse is the paginated block-children response. Blocks are
// kept opaque; the site renders them without interpreting every type.
type blockListResponse struct {
	Results    []json.RawMessage `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// ListBlockChildren fetches the content blocks of one page.
func (c *Client) ListBlockChildren(ctx context.Context, pageID string) ([]json.RawMessage, error) {
	var (
		all    []json.RawMessage
		cursor string
	)
	for {
		path := fmt.Sprintf("/v1/blocks/%s/children?page_size=%d", pageID, maxPageSize)
		if cursor != "" {
			path += "&start_cursor=" + cursor
		}
		status, body, err := c.Do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		if status < 200 || status > 299 {
			return nil, apiError(status, body)
		}

		var out blockListResponse
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, &TransportError{Status: status, Msg: fmt.Sprintf("decode block list: %v", err)}
		}
		all = append(all, out.Results...)
		if !out.HasMore || out.NextCursor == "" {
			return all, nil
		}
		cursor = out.NextCursor
	}
}
