package client

import (
	"context"
	"sort"
	"strings"

	"github.com/waltonseymour/Bazaar/pkg/logger"
)

// State is the view lifecycle: Loading before the first fetch, Loaded
// once a working set has arrived, Filtered once a visible subset has
// been computed and handed to the renderer.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateFiltered
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFiltered:
		return "filtered"
	default:
		return "unknown"
	}
}

// FetchMode selects the pagination strategy. Paged mode issues one
// server query per page and lets the server filter and order. Batch
// mode fetches a larger candidate set once and paginates, filters,
// and sorts it locally, trading staleness for fewer round trips.
type FetchMode int

const (
	FetchPaged FetchMode = iota
	FetchBatch
)

const (
	OrderCreatedAt = "createdAt"
	OrderPrice     = "price"

	// AllCategories is the wildcard category filter.
	AllCategories = "All"

	DefaultPageSize = 5

	// batchLimit bounds how much a batch-mode fetch pulls at once.
	batchLimit = 100
)

// Renderer receives the visible post set whenever it changes.
type Renderer interface {
	Render(posts []Post)
}

// View owns the browsing state: the fetched working set, the current
// filter dimensions, and the last rendered id sequence. It is driven
// from a single goroutine; use Dispatch to apply UI events.
type View struct {
	api      *Client
	renderer Renderer
	log      *logger.Logger
	mode     FetchMode

	state       State
	batch       []Post
	visible     []Post
	cache       map[string]Post
	rendered    []string
	hasRendered bool

	category string
	order    string
	page     int
	pageSize int
	viewport *Bounds
}

func NewView(api *Client, renderer Renderer, log *logger.Logger, mode FetchMode, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{
		api:      api,
		renderer: renderer,
		log:      log,
		mode:     mode,
		state:    StateLoading,
		cache:    make(map[string]Post),
		category: AllCategories,
		order:    OrderCreatedAt,
		page:     1,
		pageSize: pageSize,
	}
}

func (v *View) State() State      { return v.state }
func (v *View) Page() int         { return v.page }
func (v *View) Category() string  { return v.category }
func (v *View) Order() string     { return v.order }
func (v *View) Visible() []Post   { return v.visible }
func (v *View) Viewport() *Bounds { return v.viewport }

// Refresh fetches the working set and recomputes the visible page.
// When a set is already loaded it is reused unless force is set.
func (v *View) Refresh(ctx context.Context, force bool) error {
	if v.state == StateLoading || force {
		if err := v.fetch(ctx); err != nil {
			return err
		}
	}
	v.render()
	return nil
}

func (v *View) fetch(ctx context.Context) error {
	var opts ListOptions
	switch v.mode {
	case FetchBatch:
		opts = ListOptions{PostsPerPage: batchLimit}
	default:
		opts = ListOptions{
			Order:        v.order,
			Page:         v.page,
			PostsPerPage: v.pageSize,
		}
		if v.category != AllCategories {
			opts.Category = v.category
		}
		if v.viewport != nil {
			opts.Latitude, opts.Longitude = v.viewport.Center()
			opts.RadiusKm = v.viewport.RadiusKm()
		}
	}
	posts, err := v.api.ListPosts(ctx, opts)
	if err != nil {
		return err
	}
	v.batch = posts
	for _, p := range posts {
		v.cache[p.ID] = p
	}
	v.state = StateLoaded
	return nil
}

// filtered computes the full visible set before the page window is
// applied. In paged mode the server already did the work; filtering a
// server-sliced page again would shrink it below pageSize and strand
// matching posts on unreachable pages.
func (v *View) filtered() []Post {
	if v.mode != FetchBatch {
		return v.batch
	}
	out := make([]Post, 0, len(v.batch))
	for _, p := range v.batch {
		if v.category != AllCategories && p.CategoryID != v.category {
			continue
		}
		if v.viewport != nil && !v.viewport.Contains(p.Latitude, p.Longitude) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if v.order == OrderPrice {
			return out[i].Price < out[j].Price
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if v.order == OrderCreatedAt {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func (v *View) render() {
	set := v.filtered()
	if v.mode == FetchBatch {
		start := (v.page - 1) * v.pageSize
		if start > len(set) {
			start = len(set)
		}
		end := start + v.pageSize
		if end > len(set) {
			end = len(set)
		}
		set = set[start:end]
	}

	ids := make([]string, len(set))
	for i, p := range set {
		ids[i] = p.ID
	}
	if v.hasRendered && equalIDs(ids, v.rendered) {
		v.state = StateFiltered
		return
	}
	v.visible = set
	v.rendered = ids
	v.hasRendered = true
	v.state = StateFiltered
	v.renderer.Render(set)
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TotalPages is the computed page count in batch mode. Paged mode does
// not know the total; it returns 0.
func (v *View) TotalPages() int {
	if v.mode != FetchBatch {
		return 0
	}
	n := len(v.filtered())
	if n == 0 {
		return 1
	}
	return (n + v.pageSize - 1) / v.pageSize
}

// HasPrev reports whether the pager can move back.
func (v *View) HasPrev() bool { return v.page > 1 }

// HasNext reports whether the pager can advance. In paged mode a short
// page means the server has no more.
func (v *View) HasNext() bool {
	if v.mode == FetchBatch {
		return v.page < v.TotalPages()
	}
	return len(v.visible) == v.pageSize
}

// NextPage advances the pager. Advancing past the last page is a no-op.
func (v *View) NextPage(ctx context.Context) error {
	if !v.HasNext() {
		return nil
	}
	v.page++
	return v.reflow(ctx)
}

// PrevPage moves the pager back. Moving before page 1 is a no-op.
func (v *View) PrevPage(ctx context.Context) error {
	if !v.HasPrev() {
		return nil
	}
	v.page--
	return v.reflow(ctx)
}

// SetCategory changes the category filter and resets to page 1.
func (v *View) SetCategory(ctx context.Context, category string) error {
	if category == "" {
		category = AllCategories
	}
	if category == v.category {
		return nil
	}
	v.category = category
	v.page = 1
	return v.reflow(ctx)
}

// SetOrder changes the sort order and resets to page 1.
func (v *View) SetOrder(ctx context.Context, order string) error {
	if order != OrderCreatedAt && order != OrderPrice {
		order = OrderCreatedAt
	}
	if order == v.order {
		return nil
	}
	v.order = order
	v.page = 1
	return v.reflow(ctx)
}

// SetViewport updates the map bounds filter and resets to page 1. A nil
// bounds clears the containment filter.
func (v *View) SetViewport(ctx context.Context, bounds *Bounds) error {
	v.viewport = bounds
	v.page = 1
	return v.reflow(ctx)
}

// reflow recomputes the visible set after a filter or page change.
// Batch mode works from the cached set; paged mode re-queries.
func (v *View) reflow(ctx context.Context) error {
	if v.mode == FetchPaged {
		if err := v.fetch(ctx); err != nil {
			return err
		}
	}
	v.render()
	return nil
}

// Search replaces the working set with posts matching the query and
// renders them through the usual pipeline. A blank query reloads the
// full list instead.
func (v *View) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return v.Refresh(ctx, true)
	}
	posts, err := v.api.SearchPosts(ctx, query)
	if err != nil {
		return err
	}
	v.batch = posts
	for _, p := range posts {
		v.cache[p.ID] = p
	}
	v.page = 1
	v.state = StateLoaded
	v.render()
	return nil
}

// OpenPost returns the full representation of one post, reading through
// the cache so posts already on screen need no extra fetch.
func (v *View) OpenPost(ctx context.Context, id string) (*Post, error) {
	if p, ok := v.cache[id]; ok {
		return &p, nil
	}
	p, err := v.api.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	v.cache[p.ID] = *p
	return p, nil
}

// EditPost merges the changed fields over the cached copy, sends the
// full update, and patches the cache with the server's authoritative
// fields without a re-fetch.
func (v *View) EditPost(ctx context.Context, id, title, description string, price float64) (*Post, error) {
	cached, err := v.OpenPost(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := *cached
	merged.Title = title
	merged.Description = description
	merged.Price = price

	updated, err := v.api.UpdatePost(ctx, merged)
	if err != nil {
		return nil, err
	}
	entry := v.cache[id]
	entry.Title = updated.Title
	entry.Description = updated.Description
	entry.Price = updated.Price
	entry.UpdatedAt = updated.UpdatedAt
	v.cache[id] = entry
	return &entry, nil
}

// RemovePost deletes a post and drops it from the local working set.
func (v *View) RemovePost(ctx context.Context, id string) error {
	if err := v.api.DeletePost(ctx, id); err != nil {
		return err
	}
	delete(v.cache, id)
	kept := v.batch[:0]
	for _, p := range v.batch {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	v.batch = kept
	v.render()
	return nil
}

// RemovePhoto deletes one photo, splices it out of the cached post, and
// returns the patched post for the detail view.
func (v *View) RemovePhoto(ctx context.Context, postID, photoID string) (*Post, error) {
	if err := v.api.DeletePhoto(ctx, postID, photoID); err != nil {
		return nil, err
	}
	entry, ok := v.cache[postID]
	if !ok {
		return v.OpenPost(ctx, postID)
	}
	kept := make([]Photo, 0, len(entry.Photos))
	for _, ph := range entry.Photos {
		if ph.ID != photoID {
			kept = append(kept, ph)
		}
	}
	entry.Photos = kept
	v.cache[postID] = entry
	return &entry, nil
}
