package provider

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCachingTransport_CachesSuccessfulResponses(t *testing.T) {
	var counter atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":42}`))
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewCachingTransport(t.TempDir(), nil)}

	for i := 0; i < 3; i++ {
		resp, err := client.Post(srv.URL, "application/json", strings.NewReader(`{"q":"meaning"}`))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.JSONEq(t, `{"answer":42}`, string(body))
	}

	require.Equal(t, int64(1), counter.Load(), "repeat requests should hit the cache")
}

func TestCachingTransport_DistinctBodiesMiss(t *testing.T) {
	var counter atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewCachingTransport(t.TempDir(), nil)}

	_, err := client.Post(srv.URL, "application/json", strings.NewReader(`{"q":"one"}`))
	require.NoError(t, err)
	_, err = client.Post(srv.URL, "application/json", strings.NewReader(`{"q":"two"}`))
	require.NoError(t, err)

	require.Equal(t, int64(2), counter.Load())
}

func TestCachingTransport_DoesNotCacheErrors(t *testing.T) {
	var counter atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewCachingTransport(t.TempDir(), nil)}

	for i := 0; i < 2; i++ {
		resp, err := client.Post(srv.URL, "application/json", strings.NewReader(`{}`))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadGateway, resp.StatusCode)
		_ = resp.Body.Close()
	}

	require.Equal(t, int64(2), counter.Load(), "error responses must not be cached")
}

func TestCachingTransport_NilBody(t *testing.T) {
	var counter atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewCachingTransport(t.TempDir(), nil)}

	for i := 0; i < 2; i++ {
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, "hello", string(body))
	}

	require.Equal(t, int64(1), counter.Load())
}
