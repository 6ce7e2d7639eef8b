// Package feed maintains the merged timeline: it drives one-page fetches
// against the remote feed endpoint and folds the results into an ordered,
// deduplicated in-memory list.
package feed

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/gaulatti/cirrus/internal/client/api"
	"github.com/gaulatti/cirrus/internal/client/models"
	"github.com/gaulatti/cirrus/internal/logging"
)

// DefaultLimit is the page size requested from the feed endpoint.
const DefaultLimit = 50

// TokenSource yields a non-expired access token for outbound calls.
// *session.Manager satisfies it.
type TokenSource interface {
	EnsureValidToken(ctx context.Context) (string, error)
}

// Item is one timeline entry plus its assigned identity. The identity is
// derived once, when the item first enters the timeline, and doubles as
// the deduplication key and the caller's list key.
type Item struct {
	ID string
	models.FeedItem
}

// Synchronizer owns the timeline and the pagination cursor. It holds no
// timer: callers invoke SynchronizeOnce on whatever schedule they like,
// and concurrent invocations collapse to a single in-flight cycle.
type Synchronizer struct {
	tokens  TokenSource
	gateway api.Gateway
	log     logging.Logger
	limit   int
	onNew   func([]Item)
	newID   func() string // test seam for the last-resort identity

	syncing atomic.Bool

	mu       sync.Mutex
	timeline []Item
	known    map[string]struct{}
	cursor   string
	lastErr  error
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithLimit overrides the page size requested per cycle.
func WithLimit(n int) Option {
	return func(s *Synchronizer) { s.limit = n }
}

// WithOnNewItems registers a callback fired after a cycle that appended
// items, with the appended items in timeline order. It runs outside the
// state lock, on the synchronizing goroutine.
func WithOnNewItems(fn func([]Item)) Option {
	return func(s *Synchronizer) { s.onNew = fn }
}

// New builds a Synchronizer over the given token source and gateway.
func New(tokens TokenSource, gateway api.Gateway, log logging.Logger, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		tokens:  tokens,
		gateway: gateway,
		log:     log,
		limit:   DefaultLimit,
		newID:   uuid.NewString,
		known:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SynchronizeOnce runs a single synchronization cycle and returns the
// number of items appended to the timeline.
//
// If a cycle is already in flight the call is a no-op returning (0, nil).
// On any failure the timeline and cursor are left untouched and the error
// is surfaced without retry; the next scheduled cycle simply tries again.
func (s *Synchronizer) SynchronizeOnce(ctx context.Context) (int, error) {
	if !s.syncing.CompareAndSwap(false, true) {
		return 0, nil
	}
	defer s.syncing.Store(false)

	token, err := s.tokens.EnsureValidToken(ctx)
	if err != nil {
		s.recordErr(err)
		return 0, err
	}

	s.mu.Lock()
	cursor := s.cursor
	s.mu.Unlock()

	resp, err := s.gateway.Timeline(ctx, token, s.limit, cursor)
	if err != nil {
		s.recordErr(err)
		return 0, err
	}

	fresh := s.merge(resp)

	s.log.Debug(ctx, "timeline sync", "fetched", len(resp.Feed), "appended", len(fresh))

	if len(fresh) > 0 && s.onNew != nil {
		s.onNew(fresh)
	}
	return len(fresh), nil
}

// merge prepends the not-yet-seen items of resp, preserving their server
// order, and replaces the cursor with the server's. An absent cursor maps
// to "", meaning the next cycle retries from the newest-known state; it
// never marks the live feed as finished.
func (s *Synchronizer) merge(resp models.TimelineResponse) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := make([]Item, 0, len(resp.Feed))
	for _, it := range resp.Feed {
		id, ok := it.Key()
		if !ok {
			id = s.newID()
		}
		if _, seen := s.known[id]; seen {
			continue
		}
		s.known[id] = struct{}{}
		fresh = append(fresh, Item{ID: id, FeedItem: it})
	}

	if len(fresh) > 0 {
		merged := make([]Item, 0, len(fresh)+len(s.timeline))
		merged = append(merged, fresh...)
		merged = append(merged, s.timeline...)
		s.timeline = merged
	}

	if resp.Cursor != nil {
		s.cursor = *resp.Cursor
	} else {
		s.cursor = ""
	}
	s.lastErr = nil

	return fresh
}

func (s *Synchronizer) recordErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Timeline returns a copy of the merged timeline, newest first.
func (s *Synchronizer) Timeline() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.timeline))
	copy(out, s.timeline)
	return out
}

// Cursor returns the current pagination cursor; "" means start of feed.
func (s *Synchronizer) Cursor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Syncing reports whether a cycle is currently in flight.
func (s *Synchronizer) Syncing() bool {
	return s.syncing.Load()
}

// LastError returns the most recent cycle failure, or nil after a
// successful cycle.
func (s *Synchronizer) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
