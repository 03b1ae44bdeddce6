package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPostsSendsBearerAndQuery(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	api := New(srv.URL, "token-abc")
	posts, err := api.ListPosts(context.Background(), ListOptions{
		Order:        OrderPrice,
		Category:     "cat-1",
		Page:         2,
		PostsPerPage: 5,
	})

	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Contains(t, gotQuery, "order=price")
	assert.Contains(t, gotQuery, "category=cat-1")
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "postsPerPage=5")
}

func TestListPostsOmitsZeroOptions(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	api := New(srv.URL, "t")
	_, err := api.ListPosts(context.Background(), ListOptions{})

	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusForbidden, ErrForbidden},
		{http.StatusUnauthorized, ErrRejected},
		{http.StatusNotFound, ErrNotFound},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		api := New(srv.URL, "t")
		_, err := api.GetPost(context.Background(), "some-id")
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
		srv.Close()
	}
}

func TestCreatePostAcceptsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	api := New(srv.URL, "t")
	err := api.CreatePost(context.Background(), Post{ID: "p-1", Title: "Bike"})
	assert.NoError(t, err)
}

func TestRequestUploadURLsPositional(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/p-1/photos", r.URL.Path)
		w.Write([]byte(`["https://s3/one","https://s3/two"]`))
	}))
	defer srv.Close()

	api := New(srv.URL, "t")
	urls, err := api.RequestUploadURLs(context.Background(), "p-1", []PhotoUpload{
		{ContentType: "image/jpeg"},
		{ContentType: "image/png"},
	})

	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, "https://s3/one", urls[0])
	assert.Equal(t, "https://s3/two", urls[1])
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "Free", FormatPrice(0))
	assert.Equal(t, "$5", FormatPrice(5))
	assert.Equal(t, "$19.99", FormatPrice(19.99))
	assert.Equal(t, "$1000", FormatPrice(1000))
	assert.Equal(t, "$2.5k", FormatPrice(2500))
}
