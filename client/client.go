// Package client is a Go client for the Bazaar listing service. It wraps
// the REST surface and implements the browsing view state, command
// dispatch, and the photo upload workflow on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var (
	ErrForbidden = errors.New("client: forbidden")
	ErrNotFound  = errors.New("client: not found")
	ErrRejected  = errors.New("client: request rejected")
)

// Client calls the listing service over HTTP with a bearer token.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// ListOptions narrows a post listing query. Zero values are omitted from
// the request so the server applies its defaults. The viewport hints are
// informational; the server serves the documented filters only.
type ListOptions struct {
	Order        string
	Category     string
	Page         int
	PostsPerPage int
	Latitude     float64
	Longitude    float64
	RadiusKm     float64
}

func (c *Client) ListPosts(ctx context.Context, opts ListOptions) ([]Post, error) {
	q := url.Values{}
	if opts.Order != "" {
		q.Set("order", opts.Order)
	}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PostsPerPage > 0 {
		q.Set("postsPerPage", strconv.Itoa(opts.PostsPerPage))
	}
	if opts.RadiusKm > 0 {
		q.Set("latitude", strconv.FormatFloat(opts.Latitude, 'f', -1, 64))
		q.Set("longitude", strconv.FormatFloat(opts.Longitude, 'f', -1, 64))
		q.Set("radius", strconv.FormatFloat(opts.RadiusKm, 'f', -1, 64))
	}
	path := "/posts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var posts []Post
	if err := c.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchPosts finds posts whose title or description contains the query.
func (c *Client) SearchPosts(ctx context.Context, query string) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/search/"+url.PathEscape(query), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+id, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, post Post) error {
	return c.do(ctx, http.MethodPost, "/posts", post, nil)
}

func (c *Client) UpdatePost(ctx context.Context, post Post) (*Post, error) {
	var updated Post
	if err := c.do(ctx, http.MethodPut, "/posts/"+post.ID, post, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+id, nil, nil)
}

// RequestUploadURLs asks for one signed PUT URL per upload descriptor.
// The returned slice is positionally matched to the input.
func (c *Client) RequestUploadURLs(ctx context.Context, postID string, uploads []PhotoUpload) ([]string, error) {
	var urls []string
	if err := c.do(ctx, http.MethodPost, "/posts/"+postID+"/photos", uploads, &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

func (c *Client) PhotoURLs(ctx context.Context, postID string) ([]string, error) {
	var urls []string
	if err := c.do(ctx, http.MethodGet, "/posts/"+postID+"/photos", nil, &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

func (c *Client) DeletePhoto(ctx context.Context, postID, photoID string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+postID+"/photos/"+photoID, nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode)
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// statusError maps the service's status taxonomy onto sentinel errors.
// The service answers 403 for both a missing session and an ownership
// violation; callers cannot tell them apart and neither can we.
func statusError(code int) error {
	switch code {
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusUnauthorized:
		return ErrRejected
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("client: unexpected status %d", code)
	}
}
