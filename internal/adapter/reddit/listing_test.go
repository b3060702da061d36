package reddit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dayanaadylkhanova/reddit-analyzer/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc, breaker BreakerConfig) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	tr := NewTransport(zap.NewNop(), "listing", TransportOptions{UserAgent: "test-agent/1.0", Breaker: breaker})
	return NewClient(zap.NewNop(), tr, srv.URL+"/")
}

func TestClient_FetchRecent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/r/golang/new", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"kind":"Listing","data":{"children":[
			{"kind":"t3","data":{"id":"a","created_utc":1760968800.0,"score":5,"num_comments":3}},
			{"kind":"t3","data":{"id":"b","created_utc":1760970600}},
			{"kind":"t3"}
		]}}`))
	}, BreakerConfig{})

	posts, err := c.FetchRecent(context.Background(), "tok", "golang", 25)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "a", posts[0].ID)
	assert.Equal(t, 1760968800.0, posts[0].CreatedUTC)
	require.NotNil(t, posts[0].Score)
	assert.Equal(t, 5, *posts[0].Score)
	assert.Equal(t, int64(8), posts[0].Engagement())

	assert.Nil(t, posts[1].Score)
	assert.Nil(t, posts[1].NumComments)
	assert.Equal(t, int64(0), posts[1].Engagement())
}

func TestClient_FetchRecent_BadChildKeepsOtherPosts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"children":[
			{"data":{"id":"a","created_utc":1760968800,"score":5,"num_comments":3}},
			{"data":{"id":"frac","created_utc":1760968800,"score":2.5,"num_comments":"many"}},
			{"data":"not a post"},
			{"data":{"id":"nodate","score":9}},
			"garbage",
			{"data":{"id":"b","created_utc":1760970600,"score":1,"num_comments":1}}
		]}}`))
	}, BreakerConfig{})

	posts, err := c.FetchRecent(context.Background(), "tok", "golang", 100)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "a", posts[0].ID)
	assert.Equal(t, "frac", posts[1].ID)
	require.NotNil(t, posts[1].Score)
	assert.Equal(t, 2, *posts[1].Score)
	assert.Nil(t, posts[1].NumComments)
	assert.Equal(t, int64(2), posts[1].Engagement())
	assert.Equal(t, "b", posts[2].ID)
}

func TestClient_FetchRecent_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"reason": "private", "message": "Forbidden", "error": 403}`))
	}, BreakerConfig{})

	posts, err := c.FetchRecent(context.Background(), "tok", "secret", 100)
	assert.Nil(t, posts)
	var upErr *service.UpstreamError
	require.True(t, errors.As(err, &upErr), "expected UpstreamError, got %v", err)
	assert.Equal(t, http.StatusForbidden, upErr.Status)
	assert.Equal(t, `{"reason": "private", "message": "Forbidden", "error": 403}`, upErr.Body)
}

func TestClient_FetchRecent_MalformedEnvelopeIsEmpty(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"data": null}`,
		`{"data": {}}`,
		`{"data": {"children": []}}`,
		`{"data": "nope"}`,
		`<html>search results</html>`,
		``,
	}
	for _, body := range bodies {
		body := body
		t.Run(body, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}, BreakerConfig{})

			posts, err := c.FetchRecent(context.Background(), "tok", "golang", 100)
			require.NoError(t, err)
			assert.NotNil(t, posts)
			assert.Empty(t, posts)
		})
	}
}

func TestClient_FetchRecent_EscapesSubreddit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/a%2Fb/new", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{}`))
	}, BreakerConfig{})

	_, err := c.FetchRecent(context.Background(), "tok", "a/b", 10)
	require.NoError(t, err)
}

func TestTransport_BreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, BreakerConfig{Failures: 2, Window: 2, Delay: time.Minute})

	for i := 0; i < 2; i++ {
		_, err := c.FetchRecent(context.Background(), "tok", "golang", 100)
		var upErr *service.UpstreamError
		require.True(t, errors.As(err, &upErr), "call %d: expected UpstreamError, got %v", i, err)
		assert.Equal(t, http.StatusServiceUnavailable, upErr.Status)
	}

	_, err := c.FetchRecent(context.Background(), "tok", "golang", 100)
	require.ErrorIs(t, err, service.ErrUpstreamUnavailable)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach the server")
}

func TestTransport_ClientErrorsDoNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}, BreakerConfig{Failures: 1, Window: 1, Delay: time.Minute})

	for i := 0; i < 3; i++ {
		_, err := c.FetchRecent(context.Background(), "tok", "missing", 100)
		var upErr *service.UpstreamError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, http.StatusNotFound, upErr.Status)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestNewTransport_DefaultClientHasNoTimeout(t *testing.T) {
	tr := NewTransport(zap.NewNop(), "listing", TransportOptions{})
	assert.Zero(t, tr.hc.Timeout)

	hc := &http.Client{Timeout: 3 * time.Second}
	tr = NewTransport(zap.NewNop(), "listing", TransportOptions{HTTPClient: hc})
	assert.Same(t, hc, tr.hc)
}
