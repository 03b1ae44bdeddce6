package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waltonseymour/Bazaar/pkg/logger"
)

// recordingRenderer counts renders and remembers the last visible set.
type recordingRenderer struct {
	renders int
	details int
	last    []Post
}

func (r *recordingRenderer) Render(posts []Post) {
	r.renders++
	r.last = posts
}

func (r *recordingRenderer) RenderDetail(post *Post) {
	r.details++
}

func fixturePosts(n int) []Post {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	posts := make([]Post, n)
	for i := 0; i < n; i++ {
		posts[i] = Post{
			ID:         fmt.Sprintf("post-%02d", i),
			Title:      fmt.Sprintf("Item %d", i),
			Price:      float64(100 - i),
			Latitude:   47.6,
			Longitude:  -122.3,
			CategoryID: "cat-a",
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		if i%3 == 0 {
			posts[i].CategoryID = "cat-b"
		}
	}
	return posts
}

func listServer(t *testing.T, posts []Post, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			*requests++
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(posts)
	}))
}

func newBatchView(t *testing.T, srvURL string, r Renderer) *View {
	t.Helper()
	return NewView(New(srvURL, "t"), r, logger.New(), FetchBatch, 5)
}

func TestBatchPaginationTotals(t *testing.T) {
	srv := listServer(t, fixturePosts(12), nil)
	defer srv.Close()

	r := &recordingRenderer{}
	v := newBatchView(t, srv.URL, r)
	require.NoError(t, v.Refresh(context.Background(), false))

	assert.Equal(t, StateFiltered, v.State())
	assert.Equal(t, 3, v.TotalPages())
	assert.Len(t, v.Visible(), 5)
}

func TestPagerBoundariesAreNoOps(t *testing.T) {
	srv := listServer(t, fixturePosts(7), nil)
	defer srv.Close()

	r := &recordingRenderer{}
	v := newBatchView(t, srv.URL, r)
	ctx := context.Background()
	require.NoError(t, v.Refresh(ctx, false))

	// page 1: prev is a no-op
	require.NoError(t, v.PrevPage(ctx))
	assert.Equal(t, 1, v.Page())

	require.NoError(t, v.NextPage(ctx))
	assert.Equal(t, 2, v.Page())
	assert.Len(t, v.Visible(), 2)

	// last page: next is a no-op
	require.NoError(t, v.NextPage(ctx))
	assert.Equal(t, 2, v.Page())
}

func TestCreatedAtOrderIsDescending(t *testing.T) {
	srv := listServer(t, fixturePosts(10), nil)
	defer srv.Close()

	r := &recordingRenderer{}
	v := newBatchView(t, srv.URL, r)
	require.NoError(t, v.Refresh(context.Background(), false))

	require.NotEmpty(t, v.Visible())
	assert.Equal(t, "post-09", v.Visible()[0].ID)
}

func TestPriceOrderIsAscending(t *testing.T) {
	srv := listServer(t, fixturePosts(10), nil)
	defer srv.Close()

	r := &recordingRenderer{}
	v := newBatchView(t, srv.URL, r)
	ctx := context.Background()
	require.NoError(t, v.Refresh(ctx, false))
	require.NoError(t, v.SetOrder(ctx, OrderPrice))

	visible := v.Visible()
	require.NotEmpty(t, visible)
	for i := 1; i < len(visible); i++ {
		assert.LessOrEqual(t, visible[i-1].Price, visible[i].Price)
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	srv := listServer(t, fixturePosts(12), nil)
	defer srv.Close()

	r := &recordingRenderer{}
	v := newBatchView(t, srv.URL, r)
	ctx := context.Background()
	require.NoError(t, v.Refresh(ctx, false))
	require.NoError(t, v.NextPage(ctx))
	require.Equal(t, 2, v.Page())

	require.NoError(t, v.SetCategory(ctx, "cat-b"))
	assert.Equal(t, 1, v.Page())

	for _, p := range v.Visible() {
		assert.Equal(t, "cat-b", p.CategoryID)
	}
}

func TestViewportContainmentFilter(t *testing.T) {
	posts := fixturePosts(6)
	posts[0].Latitude, posts[0].Longitude = 40.7, -74.0 // far outside
	srv := listServer(t, posts, nil)
	defer srv.Close()

	r := &recordingRenderer{}
	v := newBatchView(t, srv.URL, r)
	ctx := context.Background()
	require.NoError(t, v.Refresh(ctx, false))
	require.NoError(t, v.SetViewport(ctx, &Bounds{North: 48, South: 47, East: -122, West: -123}))

	for _, p := range v.Visible() {
		assert.NotEqual(t, posts[0].ID, p.ID)
	}
	assert.Len(t, v.Visible(), 5)
}

func TestRenderSuppressionOnIdenticalSets(t *testing.T) {
	srv := listServer(t, fixturePosts(4), nil)
	defer srv.Close()

	r := &recordingRenderer{}
	v := newBatchView(t, srv.URL, r)
	ctx := context.Background()

	require.NoError(t, v.Refresh(ctx, false))
	require.NoError(t, v.Refresh(ctx, true))

	assert.Equal(t, 1, r.renders)
}

func TestEmptyResultStillRendersOnce(t *testing.T) {
	srv := listServer(t, nil, nil)
	defer srv.Close()

	r := &recordingRenderer{}
	v := newBatchView(t, srv.URL, r)
	require.NoError(t, v.Refresh(context.Background(), false))

	assert.Equal(t, 1, r.renders)
	assert.Equal(t, 1, v.TotalPages())
}

func TestOpenPostReadsThroughCache(t *testing.T) {
	var requests int
	srv := listServer(t, fixturePosts(3), &requests)
	defer srv.Close()

	r := &recordingRenderer{}
	v := newBatchView(t, srv.URL, r)
	ctx := context.Background()
	require.NoError(t, v.Refresh(ctx, false))
	fetchesAfterLoad := requests

	post, err := v.OpenPost(ctx, "post-01")
	require.NoError(t, err)
	assert.Equal(t, "Item 1", post.Title)
	assert.Equal(t, fetchesAfterLoad, requests)
}

func TestPagedModeRefetchesOnPageChange(t *testing.T) {
	var requests int
	srv := listServer(t, fixturePosts(5), &requests)
	defer srv.Close()

	r := &recordingRenderer{}
	v := NewView(New(srv.URL, "t"), r, logger.New(), FetchPaged, 5)
	ctx := context.Background()
	require.NoError(t, v.Refresh(ctx, false))
	require.Equal(t, 1, requests)

	require.NoError(t, v.NextPage(ctx))
	assert.Equal(t, 2, v.Page())
	assert.Equal(t, 2, requests)
}

func TestPagedModeViewportKeepsFullPages(t *testing.T) {
	// the server honors page offsets but not the viewport hints, so the
	// client must not re-filter a server-sliced page
	pageOne := fixturePosts(5)
	pageOne[0].Latitude, pageOne[0].Longitude = 40.7, -74.0
	pageOne[1].Latitude, pageOne[1].Longitude = 40.7, -74.0
	pageTwo := fixturePosts(10)[5:]

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts := pageOne
		if r.URL.Query().Get("page") == "2" {
			posts = pageTwo
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(posts)
	}))
	defer srv.Close()

	r := &recordingRenderer{}
	v := NewView(New(srv.URL, "t"), r, logger.New(), FetchPaged, 5)
	ctx := context.Background()
	require.NoError(t, v.Refresh(ctx, false))
	require.NoError(t, v.SetViewport(ctx, &Bounds{North: 48, South: 47, East: -122, West: -123}))

	// the page keeps all five posts, out-of-bounds ones included
	assert.Len(t, v.Visible(), 5)
	assert.True(t, v.HasNext())

	require.NoError(t, v.NextPage(ctx))
	assert.Equal(t, 2, v.Page())
	require.Len(t, v.Visible(), 5)
	assert.Equal(t, "post-05", v.Visible()[0].ID)
}

func TestSearchReplacesWorkingSet(t *testing.T) {
	all := fixturePosts(8)
	matches := all[2:4]
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts := all
		if r.URL.Path == "/search/lamp" {
			posts = matches
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(posts)
	}))
	defer srv.Close()

	r := &recordingRenderer{}
	v := newBatchView(t, srv.URL, r)
	ctx := context.Background()
	require.NoError(t, v.Refresh(ctx, false))
	require.NoError(t, v.NextPage(ctx))

	require.NoError(t, v.Dispatch(ctx, Command{Kind: CmdSearch, Query: "lamp"}))

	assert.Equal(t, 1, v.Page())
	assert.Len(t, v.Visible(), 2)
	assert.Equal(t, 1, v.TotalPages())
}

func TestBlankSearchReloadsFullList(t *testing.T) {
	var listCalls int
	srv := listServer(t, fixturePosts(3), &listCalls)
	defer srv.Close()

	r := &recordingRenderer{}
	v := newBatchView(t, srv.URL, r)
	ctx := context.Background()
	require.NoError(t, v.Refresh(ctx, false))
	require.Equal(t, 1, listCalls)

	require.NoError(t, v.Search(ctx, "  "))
	assert.Equal(t, 2, listCalls)
	assert.Len(t, v.Visible(), 3)
}

func TestDispatchRoutesCommands(t *testing.T) {
	srv := listServer(t, fixturePosts(8), nil)
	defer srv.Close()

	r := &recordingRenderer{}
	v := newBatchView(t, srv.URL, r)
	ctx := context.Background()
	require.NoError(t, v.Dispatch(ctx, Command{Kind: CmdReload}))
	require.NoError(t, v.Dispatch(ctx, Command{Kind: CmdNextPage}))
	assert.Equal(t, 2, v.Page())

	require.NoError(t, v.Dispatch(ctx, Command{Kind: CmdOpenPost, PostID: "post-02"}))
	assert.Equal(t, 1, r.details)

	err := v.Dispatch(ctx, Command{Kind: CommandKind(99)})
	assert.Error(t, err)
}
