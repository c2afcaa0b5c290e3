package feed

import (
	"context"
	"errors"
	"sync"

	"bloghub/internal/normalize"
	"bloghub/pkg/models"
)

// State is the pagination session lifecycle.
//
//	Idle → Loading → Ready ⇄ LoadingMore
//
// Failed is terminal for the session: a failed initial load is only
// recovered by creating a new session (remount / reload). A failed
// LoadMore keeps the session Ready with its records intact.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateLoadingMore
	StateFailed
)

// ErrNotIdle is returned when InitialLoad is called on a session that has
// already started.
var ErrNotIdle = errors.New("session already started")

// Session owns the accumulated article list for one mounted listing view.
// All mutation goes through InitialLoad and LoadMore; the loading flags
// double as a mutex so at most one fetch is in flight at a time, and
// rapid repeated LoadMore calls collapse into a single fetch.
//
// A Session is safe for concurrent use. It is destroyed with Close when
// the view unmounts; a closed session never mutates its state again.
type Session struct {
	source Source
	locale string

	// previewLimit > 0 selects the homepage-preview behavior: the initial
	// page is reduced to the top N by effective timestamp and the session
	// never loads more.
	previewLimit int

	mu      sync.Mutex
	state   State
	records []models.DisplayArticle
	seen    map[string]struct{}
	cursor  string
	hasMore bool
	lastErr error
	closed  bool
}

// NewSession creates a listing session over the given source.
func NewSession(src Source, locale string) *Session {
	return newSession(src, locale, 0)
}

// NewPreviewSession creates a homepage-preview session: one fetch,
// reduced to the newest limit articles.
func NewPreviewSession(src Source, locale string, limit int) *Session {
	return newSession(src, locale, limit)
}

func newSession(src Source, locale string, previewLimit int) *Session {
	return &Session{
		source:       src,
		locale:       locale,
		previewLimit: previewLimit,
		seen:         make(map[string]struct{}),
		hasMore:      true,
	}
}

// InitialLoad performs the first fetch. Valid only from Idle.
func (s *Session) InitialLoad(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrNotIdle
	}
	s.state = StateLoading
	s.mu.Unlock()

	page, err := s.source.FetchPage(ctx, "")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		s.hasMore = false
		return err
	}

	s.absorb(page.Items)
	s.cursor = page.NextCursor
	s.hasMore = page.HasMore
	if s.previewLimit > 0 {
		s.records = SelectTop(s.records, s.previewLimit)
		s.hasMore = false
	}
	s.state = StateReady
	return nil
}

// LoadMore fetches the next page and appends it. It is a no-op when the
// session is exhausted, failed, closed, or already fetching, so a scroll
// observer firing several times in a row costs exactly one request.
func (s *Session) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || s.state != StateReady || !s.hasMore {
		s.mu.Unlock()
		return nil
	}
	s.state = StateLoadingMore
	s.lastErr = nil
	cursor := s.cursor
	s.mu.Unlock()

	page, err := s.source.FetchPage(ctx, cursor)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if err != nil {
		// Transient: keep what we already have visible.
		s.state = StateReady
		s.lastErr = err
		return err
	}

	s.absorb(page.Items)
	s.cursor = page.NextCursor
	s.hasMore = page.HasMore
	s.state = StateReady
	return nil
}

// absorb normalizes and appends records, skipping ids already present.
// Callers hold the lock.
func (s *Session) absorb(items []models.ContentRecord) {
	for _, rec := range items {
		if _, dup := s.seen[rec.ID]; dup {
			continue
		}
		s.seen[rec.ID] = struct{}{}
		s.records = append(s.records, normalize.Normalize(rec, s.locale))
	}
}

// Close marks the session torn down. Fetches already in flight complete
// but their results are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Records returns a copy of the accumulated articles in fetch order.
func (s *Session) Records() []models.DisplayArticle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DisplayArticle, len(s.records))
	copy(out, s.records)
	return out
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading reports whether the initial fetch is in flight.
func (s *Session) Loading() bool { return s.State() == StateLoading }

// LoadingMore reports whether a follow-up fetch is in flight.
func (s *Session) LoadingMore() bool { return s.State() == StateLoadingMore }

// HasMore reports whether another page may be available.
func (s *Session) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore && s.state != StateFailed
}

// Err returns the most recent fetch error: the terminal error after a
// failed initial load, or the transient error of the last failed
// LoadMore (cleared when the next one starts).
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
