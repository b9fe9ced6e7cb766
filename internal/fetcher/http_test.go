package fetcher

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("archive bytes"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{UserAgent: "geonames-test/1.0"})
	body, err := f.Fetch(t.Context(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "archive bytes", string(body))
	assert.Equal(t, "geonames-test/1.0", gotUA)
}

func TestHTTPFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{})
	_, err := f.Fetch(t.Context(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestHTTPFetcher_NoRetry(t *testing.T) {
	// Transfers are single-shot; retry policy belongs to the caller.
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{})
	_, err := f.Fetch(t.Context(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestHTTPFetcher_Defaults(t *testing.T) {
	f := NewHTTPFetcher(HTTPOptions{})
	assert.Equal(t, "geonames/1.0", f.opts.UserAgent)
	assert.Equal(t, 5*time.Minute, f.opts.Timeout)
}

func TestHTTPFetcher_BadURL(t *testing.T) {
	f := NewHTTPFetcher(HTTPOptions{})
	_, err := f.Fetch(t.Context(), "http://127.0.0.1:1/unreachable")
	require.Error(t, err)
}
