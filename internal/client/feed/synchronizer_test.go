package feed

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaulatti/cirrus/internal/client/models"
	"github.com/gaulatti/cirrus/internal/common"
	"github.com/gaulatti/cirrus/internal/logging"
)

// ---- fakes ----

type fakeTokens struct {
	token string
	err   error
	calls int
}

func (f *fakeTokens) EnsureValidToken(ctx context.Context) (string, error) {
	f.calls++
	return f.token, f.err
}

// fakeGateway implements api.Gateway; only Timeline matters here.
type fakeGateway struct {
	timelineFn func(ctx context.Context, token string, limit int, cursor string) (models.TimelineResponse, error)

	lastToken  string
	lastLimit  int
	lastCursor string
}

func (f *fakeGateway) CreateSession(ctx context.Context, identifier, secret string) (models.Credentials, error) {
	return models.Credentials{}, nil
}

func (f *fakeGateway) RefreshSession(ctx context.Context, refreshToken string) (models.Credentials, error) {
	return models.Credentials{}, nil
}

func (f *fakeGateway) Timeline(ctx context.Context, token string, limit int, cursor string) (models.TimelineResponse, error) {
	f.lastToken = token
	f.lastLimit = limit
	f.lastCursor = cursor
	return f.timelineFn(ctx, token, limit, cursor)
}

// ---- helpers ----

func postItem(cid string) models.FeedItem {
	return models.FeedItem{Post: &models.Post{
		URI: "at://did:plc:a/app.bsky.feed.post/" + cid,
		CID: cid,
	}}
}

func contextItem(fc string) models.FeedItem {
	return models.FeedItem{FeedContext: fc}
}

func page(cursor *string, items ...models.FeedItem) models.TimelineResponse {
	return models.TimelineResponse{Cursor: cursor, Feed: items}
}

func ptr(s string) *string { return &s }

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func newSynchronizer(tokens *fakeTokens, gw *fakeGateway, opts ...Option) *Synchronizer {
	return New(tokens, gw, logging.New(io.Discard, "error"), opts...)
}

func staticPage(resp models.TimelineResponse) func(context.Context, string, int, string) (models.TimelineResponse, error) {
	return func(context.Context, string, int, string) (models.TimelineResponse, error) {
		return resp, nil
	}
}

// ---- tests ----

func TestSynchronizeOnce_MergeDeduplicates(t *testing.T) {
	t.Parallel()

	pages := []models.TimelineResponse{
		page(ptr("c1"), postItem("A"), postItem("B"), postItem("C")),
		page(ptr("c2"), postItem("B"), postItem("C"), postItem("D"), postItem("E")),
	}
	i := 0
	gw := &fakeGateway{timelineFn: func(context.Context, string, int, string) (models.TimelineResponse, error) {
		resp := pages[i]
		i++
		return resp, nil
	}}
	s := newSynchronizer(&fakeTokens{token: "tok"}, gw)

	ctx := context.Background()
	n, err := s.SynchronizeOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.SynchronizeOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, []string{"D", "E", "A", "B", "C"}, ids(s.Timeline()))
	assert.Equal(t, "c2", s.Cursor())
}

func TestSynchronizeOnce_UnseenItemsPrependedInServerOrder(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{timelineFn: staticPage(page(ptr("abc123"), postItem("X"), postItem("Y")))}
	s := newSynchronizer(&fakeTokens{token: "tok"}, gw)

	n, err := s.SynchronizeOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"X", "Y"}, ids(s.Timeline()))
	assert.Equal(t, "abc123", s.Cursor())
}

func TestSynchronizeOnce_AbsentCursorAndAllSeen(t *testing.T) {
	t.Parallel()

	pages := []models.TimelineResponse{
		page(ptr("c1"), postItem("Z")),
		page(nil, postItem("Z")),
	}
	i := 0
	gw := &fakeGateway{timelineFn: func(context.Context, string, int, string) (models.TimelineResponse, error) {
		resp := pages[i]
		i++
		return resp, nil
	}}
	s := newSynchronizer(&fakeTokens{token: "tok"}, gw)

	ctx := context.Background()
	_, err := s.SynchronizeOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, "c1", s.Cursor())

	n, err := s.SynchronizeOnce(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, n)
	assert.Equal(t, []string{"Z"}, ids(s.Timeline()))
	assert.Equal(t, "", s.Cursor(), "absent server cursor resets to start of feed")
}

func TestSynchronizeOnce_SecondCallWhileInFlightIsNoOp(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	gw := &fakeGateway{timelineFn: func(context.Context, string, int, string) (models.TimelineResponse, error) {
		close(entered)
		<-release
		return page(ptr("c1"), postItem("A")), nil
	}}
	s := newSynchronizer(&fakeTokens{token: "tok"}, gw)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		n, err := s.SynchronizeOnce(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 1, n)
	}()

	<-entered
	require.True(t, s.Syncing())

	// Racing trigger observes the in-flight cycle and returns immediately.
	n, err := s.SynchronizeOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	close(release)
	select {
	case <-firstDone:
	case <-time.After(time.Second):
		t.Fatal("first cycle did not finish")
	}

	assert.Equal(t, []string{"A"}, ids(s.Timeline()))
	assert.False(t, s.Syncing())
}

func TestSynchronizeOnce_UnauthenticatedPropagates(t *testing.T) {
	t.Parallel()

	tokens := &fakeTokens{err: common.ErrUnauthenticated}
	gw := &fakeGateway{timelineFn: staticPage(page(nil))}
	s := newSynchronizer(tokens, gw)

	n, err := s.SynchronizeOnce(context.Background())
	assert.Zero(t, n)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	assert.ErrorIs(t, s.LastError(), common.ErrUnauthenticated)
	assert.Empty(t, s.Timeline())
}

func TestSynchronizeOnce_FetchFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	boom := fmt.Errorf("%w: upstream sad", common.ErrNetwork)
	responses := []func() (models.TimelineResponse, error){
		func() (models.TimelineResponse, error) { return page(ptr("c1"), postItem("A")), nil },
		func() (models.TimelineResponse, error) { return models.TimelineResponse{}, boom },
		func() (models.TimelineResponse, error) { return page(ptr("c2"), postItem("B")), nil },
	}
	i := 0
	gw := &fakeGateway{timelineFn: func(context.Context, string, int, string) (models.TimelineResponse, error) {
		fn := responses[i]
		i++
		return fn()
	}}
	s := newSynchronizer(&fakeTokens{token: "tok"}, gw)
	ctx := context.Background()

	_, err := s.SynchronizeOnce(ctx)
	require.NoError(t, err)

	n, err := s.SynchronizeOnce(ctx)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, common.ErrNetwork)
	assert.Equal(t, []string{"A"}, ids(s.Timeline()), "failed cycle must not change the timeline")
	assert.Equal(t, "c1", s.Cursor(), "failed cycle must not change the cursor")
	assert.Error(t, s.LastError())

	// The failed cursor is retried on the next cycle.
	_, err = s.SynchronizeOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c1", gw.lastCursor)
	assert.NoError(t, s.LastError(), "a successful cycle clears the last error")
}

func TestSynchronizeOnce_PassesTokenLimitAndCursor(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{timelineFn: staticPage(page(ptr("c1")))}
	s := newSynchronizer(&fakeTokens{token: "tok-7"}, gw, WithLimit(25))
	ctx := context.Background()

	_, err := s.SynchronizeOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-7", gw.lastToken)
	assert.Equal(t, 25, gw.lastLimit)
	assert.Equal(t, "", gw.lastCursor)

	_, err = s.SynchronizeOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c1", gw.lastCursor)
}

func TestSynchronizeOnce_UnderivableItemsGetGeneratedIdentities(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{timelineFn: staticPage(page(nil, contextItem("discover"), contextItem("discover")))}
	s := newSynchronizer(&fakeTokens{token: "tok"}, gw)
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("gen-%d", seq)
	}

	n, err := s.SynchronizeOnce(context.Background())
	require.NoError(t, err)

	// Each underivable item gets its own identity, assigned exactly once.
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"gen-1", "gen-2"}, ids(s.Timeline()))
}

func TestSynchronizeOnce_OnNewItemsCallback(t *testing.T) {
	t.Parallel()

	pages := []models.TimelineResponse{
		page(ptr("c1"), postItem("A")),
		page(ptr("c2"), postItem("A")),
	}
	i := 0
	gw := &fakeGateway{timelineFn: func(context.Context, string, int, string) (models.TimelineResponse, error) {
		resp := pages[i]
		i++
		return resp, nil
	}}

	var notified [][]string
	s := newSynchronizer(&fakeTokens{token: "tok"}, gw, WithOnNewItems(func(items []Item) {
		notified = append(notified, ids(items))
	}))
	ctx := context.Background()

	_, err := s.SynchronizeOnce(ctx)
	require.NoError(t, err)
	_, err = s.SynchronizeOnce(ctx)
	require.NoError(t, err)

	// Fired once, for the cycle that actually appended.
	require.Len(t, notified, 1)
	assert.Equal(t, []string{"A"}, notified[0])
}

func TestTimeline_ReturnsCopy(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{timelineFn: staticPage(page(ptr("c1"), postItem("A"), postItem("B")))}
	s := newSynchronizer(&fakeTokens{token: "tok"}, gw)

	_, err := s.SynchronizeOnce(context.Background())
	require.NoError(t, err)

	got := s.Timeline()
	got[0] = Item{ID: "mutated"}
	assert.Equal(t, []string{"A", "B"}, ids(s.Timeline()))
}

func TestSynchronizeOnce_TokenSourceConsultedEveryCycle(t *testing.T) {
	t.Parallel()

	tokens := &fakeTokens{token: "tok"}
	gw := &fakeGateway{timelineFn: staticPage(page(nil))}
	s := newSynchronizer(tokens, gw)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.SynchronizeOnce(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, tokens.calls)
}
