package memeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/mememania/internal/domain"
)

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32, *atomic.Value) {
	t.Helper()
	var calls atomic.Int32
	var path atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		path.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, &path
}

func TestFetchMemes_ProjectsFields(t *testing.T) {
	body := `{"count":2,"memes":[
		{"title":"a","url":"u1","subreddit":"s","nsfw":false,"postLink":"p1","author":"x","ups":10},
		{"title":"b","url":"u2","subreddit":"s","nsfw":true,"postLink":"p2"}]}`
	srv, calls, path := newTestServer(t, http.StatusOK, body)

	c := NewClient(&Config{BaseURL: srv.URL + "/"})
	memes, err := c.FetchMemes(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "/gimme/2", path.Load())
	assert.Equal(t, []domain.MemeRecord{
		{Title: "a", URL: "u1", Subreddit: "s", NSFW: false, PostLink: "p1"},
		{Title: "b", URL: "u2", Subreddit: "s", NSFW: true, PostLink: "p2"},
	}, memes)
}

func TestFetchMemes_SilentEmpty(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "non-200 status", status: http.StatusServiceUnavailable, body: `{"code":503}`},
		{name: "not found with garbage body", status: http.StatusNotFound, body: `<html>`},
		{name: "missing memes field", status: http.StatusOK, body: `{"code":200}`},
		{name: "null memes", status: http.StatusOK, body: `{"memes":null}`},
		{name: "empty memes", status: http.StatusOK, body: `{"memes":[]}`},
		{name: "false memes", status: http.StatusOK, body: `{"memes":false}`},
		{name: "zero memes", status: http.StatusOK, body: `{"memes":0}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, calls, _ := newTestServer(t, tc.status, tc.body)

			memes, err := NewClient(&Config{BaseURL: srv.URL}).FetchMemes(context.Background(), 3)
			require.NoError(t, err)
			assert.NotNil(t, memes)
			assert.Empty(t, memes)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestFetchMemes_MissingFieldAbortsBatch(t *testing.T) {
	body := `{"memes":[
		{"title":"a","url":"u1","subreddit":"s","nsfw":false,"postLink":"p1"},
		{"title":"b","url":"u2","subreddit":"s","nsfw":false}]}`
	srv, _, _ := newTestServer(t, http.StatusOK, body)

	memes, err := NewClient(&Config{BaseURL: srv.URL}).FetchMemes(context.Background(), 2)
	require.Error(t, err)
	assert.Nil(t, memes)
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.ErrorIs(t, err, domain.ErrUpstreamFieldMissing)
	assert.Contains(t, err.Error(), "Meme API error")
	assert.Contains(t, err.Error(), "'postLink'")
}

func TestFetchMemes_ParseFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"memes":[`},
		{name: "top-level null", body: `null`},
		{name: "top-level array", body: `[]`},
		{name: "memes not a list", body: `{"memes":"abc"}`},
		{name: "element not an object", body: `{"memes":[1]}`},
		{name: "wrong field type", body: `{"memes":[{"title":1,"url":"u","subreddit":"s","nsfw":false,"postLink":"p"}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _, _ := newTestServer(t, http.StatusOK, tc.body)

			memes, err := NewClient(&Config{BaseURL: srv.URL}).FetchMemes(context.Background(), 1)
			require.Error(t, err)
			assert.Nil(t, memes)
			assert.ErrorIs(t, err, domain.ErrExternalService)
			assert.False(t, errors.Is(err, domain.ErrUpstreamFieldMissing))
		})
	}
}

func TestFetchMemes_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	memes, err := NewClient(&Config{BaseURL: url}).FetchMemes(context.Background(), 3)
	require.Error(t, err)
	assert.Nil(t, memes)

	var extErr *domain.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, ServiceName, extErr.Service)
}

func TestFetchMemes_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewClient(&Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.FetchMemes(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestIsFalsy(t *testing.T) {
	falsy := []string{`null`, `false`, `0`, `0.0`, `""`, `[]`, `[ ]`, `{}`}
	truthy := []string{`true`, `1`, `"x"`, `[1]`, `{"a":1}`}

	for _, v := range falsy {
		assert.True(t, isFalsy([]byte(v)), v)
	}
	for _, v := range truthy {
		assert.False(t, isFalsy([]byte(v)), v)
	}
}
